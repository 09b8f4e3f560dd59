package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RecordDeviceStatus writes one probe observation for a player.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Dropped silently when the client is closed, matching the best-effort
// nature of probe telemetry.
//
// Parameters:
//   - address: Player network address (tag)
//   - label: Human-readable player label (tag)
//   - online: Whether the player answered the probe
//   - latencyMS: Probe round-trip time in milliseconds
func (c *Client) RecordDeviceStatus(address, label string, online bool, latencyMS int64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_status",
		map[string]string{
			"address": address,
			"label":   label,
		},
		map[string]interface{}{
			"online":     online,
			"latency_ms": latencyMS,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
