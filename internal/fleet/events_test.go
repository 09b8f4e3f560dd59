package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

// stubSink records published fleet events.
type stubSink struct {
	mu     sync.Mutex
	topics []string
	bodies [][]byte
	err    error
}

func (s *stubSink) PublishEvent(topic string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	s.bodies = append(s.bodies, payload)
	return s.err
}

func TestMutatingOperationsPublishEvents(t *testing.T) {
	client := NewMockClient()
	o := newTestOrchestrator(t, client)

	sink := &stubSink{}
	o.SetEventSink(sink)

	ctx := context.Background()
	if _, err := o.CreateFileAsset(ctx, fileMeta(), []string{"10.0.0.5"}); err != nil {
		t.Fatalf("CreateFileAsset() error = %v", err)
	}
	if _, err := o.DeleteAssets(ctx, []string{"10.0.0.5|42"}); err != nil {
		t.Fatalf("DeleteAssets() error = %v", err)
	}
	if _, err := o.SetAssetsEnabled(ctx, []string{"10.0.0.5|42"}, false); err != nil {
		t.Fatalf("SetAssetsEnabled() error = %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()

	want := []string{
		"signfleet/fleet/create_file_asset",
		"signfleet/fleet/delete_assets",
		"signfleet/fleet/disable_assets",
	}
	if len(sink.topics) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(sink.topics), len(want), sink.topics)
	}
	for i := range want {
		if sink.topics[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, sink.topics[i], want[i])
		}
	}

	var event Event
	if err := json.Unmarshal(sink.bodies[0], &event); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	if event.ID == "" || event.Timestamp == "" {
		t.Errorf("event missing id or timestamp: %+v", event)
	}
	if event.Operation != "create_file_asset" || event.Devices != 1 || event.Succeeded != 1 || event.Failed != 0 {
		t.Errorf("event = %+v", event)
	}
}

func TestPublishFailureDoesNotAffectResult(t *testing.T) {
	client := NewMockClient()
	o := newTestOrchestrator(t, client)
	o.SetEventSink(&stubSink{err: errors.New("broker down")})

	results, err := o.CreateFileAsset(context.Background(), fileMeta(), []string{"10.0.0.5"})
	if err != nil {
		t.Fatalf("CreateFileAsset() error = %v", err)
	}
	if !results["10.0.0.5"].OK {
		t.Errorf("result = %+v", results["10.0.0.5"])
	}
}

func TestNoSinkNoEvents(t *testing.T) {
	client := NewMockClient()
	o := newTestOrchestrator(t, client)

	// No sink configured; must not panic.
	if _, err := o.CreateFileAsset(context.Background(), fileMeta(), []string{"10.0.0.5"}); err != nil {
		t.Fatalf("CreateFileAsset() error = %v", err)
	}
}
