package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Sign Fleet Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Fleet     FleetConfig     `yaml:"fleet"`
	Directory DirectoryConfig `yaml:"directory"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FleetConfig contains settings for talking to the signage players.
//
// Every player exposes the same REST API and shares one set of Basic-Auth
// credentials, so the whole fleet is configured once here.
type FleetConfig struct {
	Auth     FleetAuthConfig    `yaml:"auth"`
	Scheme   string             `yaml:"scheme"`
	Timeouts FleetTimeoutConfig `yaml:"timeouts"`
}

// FleetAuthConfig contains the Basic-Auth credentials shared by all players.
type FleetAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// FleetTimeoutConfig contains per-call timeouts for player requests (seconds).
//
// Timeouts are per call, never per batch: one slow player must not gate
// players that already answered.
type FleetTimeoutConfig struct {
	// Request bounds ordinary API calls (create, list, delete, patch).
	Request int `yaml:"request"`

	// Upload bounds multipart file uploads, which can carry large video
	// files and so get a more generous bound.
	Upload int `yaml:"upload"`

	// Probe bounds the liveness probe. Kept short because an unanswered
	// probe simply means "Offline".
	Probe int `yaml:"probe"`
}

// DirectoryConfig contains device directory settings.
type DirectoryConfig struct {
	// Source selects the directory backing: "csv" or "sqlite".
	Source string `yaml:"source"`

	// CSVPath is the path to the device list for the csv source.
	CSVPath string `yaml:"csv_path"`

	// Database configures the sqlite source.
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig contains SQLite database settings for the sqlite directory source.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains settings for the live status stream.
type WebSocketConfig struct {
	Path string `yaml:"path"`

	// StatusInterval is how often the fleet is probed for connected
	// stream clients (seconds).
	StatusInterval int `yaml:"status_interval"`
}

// MQTTConfig contains MQTT broker settings for fleet event publishing.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for probe telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SIGNFLEET_SECTION_KEY
// For example: SIGNFLEET_FLEET_PASSWORD, SIGNFLEET_DIRECTORY_CSV_PATH
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Fleet: FleetConfig{
			Scheme: "http",
			Timeouts: FleetTimeoutConfig{
				Request: 30,
				Upload:  120,
				Probe:   5,
			},
		},
		Directory: DirectoryConfig{
			Source:  "csv",
			CSVPath: "./configs/devices.csv",
			Database: DatabaseConfig{
				Path:        "./data/signfleet.db",
				WALMode:     true,
				BusyTimeout: 5,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 3500,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 180,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			StatusInterval: 15,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "signfleet-core",
			},
			QoS: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SIGNFLEET_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Fleet credentials (prefer env over file for secrets)
	if v := os.Getenv("SIGNFLEET_FLEET_USERNAME"); v != "" {
		cfg.Fleet.Auth.Username = v
	}
	if v := os.Getenv("SIGNFLEET_FLEET_PASSWORD"); v != "" {
		cfg.Fleet.Auth.Password = v
	}

	// Directory
	if v := os.Getenv("SIGNFLEET_DIRECTORY_SOURCE"); v != "" {
		cfg.Directory.Source = v
	}
	if v := os.Getenv("SIGNFLEET_DIRECTORY_CSV_PATH"); v != "" {
		cfg.Directory.CSVPath = v
	}
	if v := os.Getenv("SIGNFLEET_DIRECTORY_DB_PATH"); v != "" {
		cfg.Directory.Database.Path = v
	}

	// API
	if v := os.Getenv("SIGNFLEET_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// MQTT
	if v := os.Getenv("SIGNFLEET_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SIGNFLEET_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SIGNFLEET_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("SIGNFLEET_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Fleet validation - credentials are required because every player
	// call is authenticated.
	if c.Fleet.Auth.Username == "" {
		errs = append(errs, "fleet.auth.username is required (set SIGNFLEET_FLEET_USERNAME environment variable)")
	}
	if c.Fleet.Auth.Password == "" {
		errs = append(errs, "fleet.auth.password is required (set SIGNFLEET_FLEET_PASSWORD environment variable)")
	}
	if c.Fleet.Scheme != "http" && c.Fleet.Scheme != "https" {
		errs = append(errs, "fleet.scheme must be http or https")
	}
	if c.Fleet.Timeouts.Request < 1 {
		errs = append(errs, "fleet.timeouts.request must be at least 1 second")
	}
	if c.Fleet.Timeouts.Upload < 1 {
		errs = append(errs, "fleet.timeouts.upload must be at least 1 second")
	}
	if c.Fleet.Timeouts.Probe < 1 {
		errs = append(errs, "fleet.timeouts.probe must be at least 1 second")
	}

	// Directory validation
	switch c.Directory.Source {
	case "csv":
		if c.Directory.CSVPath == "" {
			errs = append(errs, "directory.csv_path is required for the csv source")
		}
	case "sqlite":
		if c.Directory.Database.Path == "" {
			errs = append(errs, "directory.database.path is required for the sqlite source")
		}
	default:
		errs = append(errs, "directory.source must be csv or sqlite")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// MQTT validation
	if c.MQTT.Enabled && (c.MQTT.QoS < 0 || c.MQTT.QoS > 2) {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set SIGNFLEET_INFLUXDB_TOKEN)")
		}
	}

	// WebSocket validation
	if c.WebSocket.StatusInterval < 1 {
		errs = append(errs, "websocket.status_interval must be at least 1 second")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetRequestTimeout returns the player request timeout as a Duration.
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.Fleet.Timeouts.Request) * time.Second
}

// GetUploadTimeout returns the player upload timeout as a Duration.
func (c *Config) GetUploadTimeout() time.Duration {
	return time.Duration(c.Fleet.Timeouts.Upload) * time.Second
}

// GetProbeTimeout returns the liveness probe timeout as a Duration.
func (c *Config) GetProbeTimeout() time.Duration {
	return time.Duration(c.Fleet.Timeouts.Probe) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// GetStatusInterval returns the websocket status push interval as a Duration.
func (c *Config) GetStatusInterval() time.Duration {
	return time.Duration(c.WebSocket.StatusInterval) * time.Second
}
