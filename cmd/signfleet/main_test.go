package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/config"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/logging"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("SIGNFLEET_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingCredentials verifies run fails when fleet credentials
// are absent.
func TestRun_MissingCredentials(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
fleet:
  auth:
    username: ""
    password: ""
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	t.Setenv("SIGNFLEET_CONFIG", configPath)
	t.Setenv("SIGNFLEET_FLEET_USERNAME", "")
	t.Setenv("SIGNFLEET_FLEET_PASSWORD", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without fleet credentials")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("SIGNFLEET_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want default", got)
	}

	t.Setenv("SIGNFLEET_CONFIG", "/etc/signfleet/config.yaml")
	if got := getConfigPath(); got != "/etc/signfleet/config.yaml" {
		t.Errorf("getConfigPath() = %q", got)
	}
}

func TestBuildDirectorySource_UnknownSource(t *testing.T) {
	cfg := &config.Config{}
	cfg.Directory.Source = "ldap"

	_, _, err := buildDirectorySource(context.Background(), cfg, logging.Default())
	if err == nil {
		t.Fatal("expected error for unknown directory source")
	}
}

func TestBuildDirectorySource_CSV(t *testing.T) {
	cfg := &config.Config{}
	cfg.Directory.Source = "csv"
	cfg.Directory.CSVPath = filepath.Join(t.TempDir(), "devices.csv")

	if err := os.WriteFile(cfg.Directory.CSVPath, []byte("10.0.0.5,Lobby\n"), 0600); err != nil {
		t.Fatalf("writing devices file: %v", err)
	}

	source, db, err := buildDirectorySource(context.Background(), cfg, logging.Default())
	if err != nil {
		t.Fatalf("buildDirectorySource() error = %v", err)
	}
	if db != nil {
		t.Error("csv source should not open a database")
	}

	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(devices) != 1 || devices[0].Label != "Lobby" {
		t.Errorf("devices = %v", devices)
	}
}

func TestBuildDirectorySource_SQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Directory.Source = "sqlite"
	cfg.Directory.Database.Path = filepath.Join(t.TempDir(), "signfleet.db")
	cfg.Directory.Database.WALMode = true
	cfg.Directory.Database.BusyTimeout = 5

	source, db, err := buildDirectorySource(context.Background(), cfg, logging.Default())
	if err != nil {
		t.Fatalf("buildDirectorySource() error = %v", err)
	}
	if db == nil {
		t.Fatal("sqlite source should return the database handle")
	}
	defer db.Close() //nolint:errcheck

	// Fresh managed directory starts empty.
	devices, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("fresh directory has %d devices, want 0", len(devices))
	}
}
