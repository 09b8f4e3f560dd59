package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCSV writes content to a temp file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}
	return path
}

func TestCSVSource_Load(t *testing.T) {
	content := "10.0.0.5,Lobby Screen\n10.0.0.6,Cafeteria\n"
	source := NewCSVSource(writeCSV(t, content), nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(devices) != 2 {
		t.Fatalf("Load() returned %d devices, want 2", len(devices))
	}
	if devices[0].Address != "10.0.0.5" || devices[0].Label != "Lobby Screen" {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[1].Label != "Cafeteria" {
		t.Errorf("devices[1] = %+v", devices[1])
	}
}

func TestCSVSource_LabelDefaultsToAddress(t *testing.T) {
	source := NewCSVSource(writeCSV(t, "10.0.0.7\n"), nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("Load() returned %d devices, want 1", len(devices))
	}
	if devices[0].Label != "10.0.0.7" {
		t.Errorf("label = %q, want address fallback", devices[0].Label)
	}
}

func TestCSVSource_SkipsBadRows(t *testing.T) {
	// Empty line, whitespace-only address, then a good row.
	content := "\n  ,orphan label\n10.0.0.8,Back Office\n"
	source := NewCSVSource(writeCSV(t, content), nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() should not abort on bad rows: %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("Load() returned %d devices, want 1", len(devices))
	}
	if devices[0].Address != "10.0.0.8" {
		t.Errorf("devices[0].Address = %q", devices[0].Address)
	}
}

func TestCSVSource_TrimsWhitespace(t *testing.T) {
	source := NewCSVSource(writeCSV(t, " 10.0.0.9 , Reception \n"), nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if devices[0].Address != "10.0.0.9" {
		t.Errorf("address not trimmed: %q", devices[0].Address)
	}
	if devices[0].Label != "Reception" {
		t.Errorf("label not trimmed: %q", devices[0].Label)
	}
}

func TestCSVSource_SkipsHeaderRow(t *testing.T) {
	content := "address,label\n10.0.0.5,Lobby\n"
	source := NewCSVSource(writeCSV(t, content), nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("Load() returned %d devices, want 1", len(devices))
	}
	if devices[0].Address != "10.0.0.5" {
		t.Errorf("devices[0].Address = %q", devices[0].Address)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	source := NewCSVSource("/nonexistent/devices.csv", nil)

	_, err := source.Load(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestCSVSource_RereadsPerCall(t *testing.T) {
	path := writeCSV(t, "10.0.0.5,One\n")
	source := NewCSVSource(path, nil)

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("first Load() returned %d devices", len(devices))
	}

	// Append a device; the next Load must see it without any restart.
	content := "10.0.0.5,One\n10.0.0.6,Two\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to rewrite csv: %v", err)
	}

	devices, err = source.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if len(devices) != 2 {
		t.Errorf("second Load() returned %d devices, want 2", len(devices))
	}
}
