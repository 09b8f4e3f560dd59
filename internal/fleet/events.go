package fleet

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// eventTopicPrefix is the MQTT topic root for fleet operation events.
const eventTopicPrefix = "signfleet/fleet/"

// Event is the summary published after each mutating fleet operation.
// Consumers (dashboards, alerting) subscribe to signfleet/fleet/#.
type Event struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Timestamp string `json:"timestamp"`
	Devices   int    `json:"devices"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// publishEvent emits an operation summary when an event sink is configured.
// Publishing is best-effort: a broker failure is logged and swallowed, never
// surfaced to the caller - the fleet result is already final at this point.
func (o *Orchestrator) publishEvent(operation string, results Result) {
	if o.events == nil {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Operation: operation,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Devices:   len(results),
		Succeeded: results.Succeeded(),
		Failed:    results.Failed(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		o.logger.Error("encoding fleet event", "operation", operation, "error", err)
		return
	}

	if err := o.events.PublishEvent(eventTopicPrefix+operation, payload); err != nil {
		o.logger.Warn("publishing fleet event", "operation", operation, "error", err)
	}
}
