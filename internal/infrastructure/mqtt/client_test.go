package mqtt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPublishValidation(t *testing.T) {
	// Zero client: disconnected, no broker needed for validation paths.
	client := &Client{}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 0, ErrInvalidTopic},
		{"invalid qos", "signfleet/fleet/delete_assets", []byte("x"), 3, ErrInvalidQoS},
		{"oversized payload", "signfleet/fleet/delete_assets", bytes.Repeat([]byte("a"), maxPayloadSize+1), 0, ErrPublishFailed},
		{"not connected", "signfleet/fleet/delete_assets", []byte("x"), 0, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishEventNotConnected(t *testing.T) {
	client := &Client{}
	err := client.PublishEvent("signfleet/fleet/create_file_asset", []byte(`{}`))
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishEvent() error = %v, want ErrNotConnected", err)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestStatusPayloads(t *testing.T) {
	for name, payload := range map[string]string{
		"online":  buildOnlinePayload("signfleet-core"),
		"offline": buildOfflinePayload("signfleet-core"),
	} {
		var decoded map[string]string
		if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
			t.Fatalf("%s payload is not valid JSON: %v", name, err)
		}
		if decoded["status"] != name {
			t.Errorf("%s payload status = %q", name, decoded["status"])
		}
		if decoded["client_id"] != "signfleet-core" || decoded["timestamp"] == "" {
			t.Errorf("%s payload = %v", name, decoded)
		}
	}

	if !strings.Contains(buildOfflinePayload("x"), "graceful_shutdown") {
		t.Error("offline payload should carry graceful_shutdown reason")
	}
}
