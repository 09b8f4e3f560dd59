package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the devices table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE devices (
			address  TEXT PRIMARY KEY,
			label    TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSQLiteSource_PutAndLoad(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))
	ctx := context.Background()

	if err := source.Put(ctx, Device{Address: "10.0.0.5", Label: "Lobby"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := source.Put(ctx, Device{Address: "10.0.0.6", Label: "Cafeteria"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	devices, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(devices) != 2 {
		t.Fatalf("Load() returned %d devices, want 2", len(devices))
	}
	// Insertion order is preserved via position.
	if devices[0].Address != "10.0.0.5" || devices[1].Address != "10.0.0.6" {
		t.Errorf("unexpected order: %+v", devices)
	}
}

func TestSQLiteSource_PutUpdatesLabel(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))
	ctx := context.Background()

	if err := source.Put(ctx, Device{Address: "10.0.0.5", Label: "Old"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := source.Put(ctx, Device{Address: "10.0.0.5", Label: "New"}); err != nil {
		t.Fatalf("Put() update error = %v", err)
	}

	devices, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("Load() returned %d devices, want 1", len(devices))
	}
	if devices[0].Label != "New" {
		t.Errorf("label = %q, want %q", devices[0].Label, "New")
	}
}

func TestSQLiteSource_EmptyLabelDefaultsToAddress(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))
	ctx := context.Background()

	if err := source.Put(ctx, Device{Address: "10.0.0.5"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	devices, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if devices[0].Label != "10.0.0.5" {
		t.Errorf("label = %q, want address fallback", devices[0].Label)
	}
}

func TestSQLiteSource_PutEmptyAddress(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))

	err := source.Put(context.Background(), Device{Address: "  "})
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("Put() error = %v, want ErrInvalidAddress", err)
	}
}

func TestSQLiteSource_Remove(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))
	ctx := context.Background()

	if err := source.Put(ctx, Device{Address: "10.0.0.5", Label: "Lobby"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := source.Remove(ctx, "10.0.0.5"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	devices, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Load() returned %d devices after removal, want 0", len(devices))
	}
}

func TestSQLiteSource_RemoveNotFound(t *testing.T) {
	source := NewSQLiteSource(setupTestDB(t))

	err := source.Remove(context.Background(), "10.0.0.99")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Remove() error = %v, want ErrDeviceNotFound", err)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() should be true for ErrDeviceNotFound")
	}
}
