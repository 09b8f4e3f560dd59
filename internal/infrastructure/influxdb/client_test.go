package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/config"
)

func TestConnectDisabled(t *testing.T) {
	cfg := config.InfluxDBConfig{Enabled: false}

	_, err := Connect(cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestHealthCheckNotConnected(t *testing.T) {
	client := &Client{}
	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestRecordDeviceStatusClosedNoop(t *testing.T) {
	// A closed client must drop writes silently, not panic.
	client := &Client{}
	client.RecordDeviceStatus("10.0.0.5", "Lobby", true, 12)
}

func TestFlushClosedNoop(t *testing.T) {
	client := &Client{}
	client.Flush()
}
