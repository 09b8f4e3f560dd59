package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes content to a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
fleet:
  auth:
    username: "anthias"
    password: "secret"
  scheme: http
directory:
  source: csv
  csv_path: "/tmp/devices.csv"
api:
  host: "0.0.0.0"
  port: 3500
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Fleet.Auth.Username != "anthias" {
		t.Errorf("Fleet.Auth.Username = %q, want %q", cfg.Fleet.Auth.Username, "anthias")
	}
	if cfg.Directory.CSVPath != "/tmp/devices.csv" {
		t.Errorf("Directory.CSVPath = %q, want %q", cfg.Directory.CSVPath, "/tmp/devices.csv")
	}
	// Defaults survive partial files
	if cfg.Fleet.Timeouts.Probe != 5 {
		t.Errorf("Fleet.Timeouts.Probe = %d, want default 5", cfg.Fleet.Timeouts.Probe)
	}
	if cfg.API.Port != 3500 {
		t.Errorf("API.Port = %d, want 3500", cfg.API.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	content := `
directory:
  source: csv
  csv_path: "/tmp/devices.csv"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error for missing credentials, got nil")
	}
	if !strings.Contains(err.Error(), "fleet.auth.username") {
		t.Errorf("error should mention fleet.auth.username, got: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := `
fleet:
  auth:
    username: "file-user"
    password: "file-pass"
directory:
  source: csv
  csv_path: "/tmp/devices.csv"
`
	t.Setenv("SIGNFLEET_FLEET_PASSWORD", "env-pass")
	t.Setenv("SIGNFLEET_DIRECTORY_CSV_PATH", "/etc/signfleet/devices.csv")

	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Fleet.Auth.Password != "env-pass" {
		t.Errorf("env override not applied: password = %q", cfg.Fleet.Auth.Password)
	}
	if cfg.Directory.CSVPath != "/etc/signfleet/devices.csv" {
		t.Errorf("env override not applied: csv_path = %q", cfg.Directory.CSVPath)
	}
}

func TestValidate_InvalidDirectorySource(t *testing.T) {
	cfg := defaultConfig()
	cfg.Fleet.Auth.Username = "u"
	cfg.Fleet.Auth.Password = "p"
	cfg.Directory.Source = "ldap"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for unknown directory source")
	}
	if !strings.Contains(err.Error(), "directory.source") {
		t.Errorf("error should mention directory.source, got: %v", err)
	}
}

func TestValidate_InfluxRequiresToken(t *testing.T) {
	cfg := defaultConfig()
	cfg.Fleet.Auth.Username = "u"
	cfg.Fleet.Auth.Password = "p"
	cfg.InfluxDB.Enabled = true
	cfg.InfluxDB.URL = "http://localhost:8086"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for enabled influxdb without token")
	}
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.GetProbeTimeout(); got != 5*time.Second {
		t.Errorf("GetProbeTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetUploadTimeout(); got != 120*time.Second {
		t.Errorf("GetUploadTimeout() = %v, want 120s", got)
	}
	if got := cfg.GetStatusInterval(); got != 15*time.Second {
		t.Errorf("GetStatusInterval() = %v, want 15s", got)
	}
}
