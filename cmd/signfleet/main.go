// Sign Fleet Core - Digital Signage Fleet Orchestration
//
// This is the main entry point for the Sign Fleet Core engine. It turns a
// fleet of independent signage players into one logical system: deploy an
// asset everywhere at once, see every player's state in one view, and keep
// one player's failure from touching the rest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/sign-fleet-core/migrations"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
	"github.com/nerrad567/sign-fleet-core/internal/api"
	"github.com/nerrad567/sign-fleet-core/internal/directory"
	"github.com/nerrad567/sign-fleet-core/internal/fleet"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/config"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/database"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/logging"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Sign Fleet Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Set up the device directory source
	source, db, err := buildDirectorySource(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
	}

	// Player client shared by all fleet operations
	client := anthias.New(anthias.Config{
		Username:       cfg.Fleet.Auth.Username,
		Password:       cfg.Fleet.Auth.Password,
		Scheme:         cfg.Fleet.Scheme,
		RequestTimeout: cfg.GetRequestTimeout(),
		UploadTimeout:  cfg.GetUploadTimeout(),
		ProbeTimeout:   cfg.GetProbeTimeout(),
	})

	// Fleet orchestrator
	orchestrator, err := fleet.New(client, source, log)
	if err != nil {
		return fmt.Errorf("creating fleet orchestrator: %w", err)
	}

	// Connect to MQTT broker (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		orchestrator.SetEventSink(mqttClient)
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		orchestrator.SetStatusRecorder(influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		WS:      cfg.WebSocket,
		Logger:  log,
		Fleet:   orchestrator,
		Source:  source,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database (sqlite source only)

	log.Info("Sign Fleet Core stopped")
	return nil
}

// buildDirectorySource constructs the configured directory source.
//
// The csv source needs no setup beyond the file path. The sqlite source
// opens the database and runs migrations; the returned *database.DB is
// non-nil only in that case and must be closed by the caller.
func buildDirectorySource(ctx context.Context, cfg *config.Config, log *logging.Logger) (directory.Source, *database.DB, error) {
	switch cfg.Directory.Source {
	case "csv":
		log.Info("device directory: csv", "path", cfg.Directory.CSVPath)
		return directory.NewCSVSource(cfg.Directory.CSVPath, log), nil, nil

	case "sqlite":
		db, err := database.Open(database.Config{
			Path:        cfg.Directory.Database.Path,
			WALMode:     cfg.Directory.Database.WALMode,
			BusyTimeout: cfg.Directory.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}

		if err := db.Migrate(ctx); err != nil {
			//nolint:errcheck // already failing, best-effort close
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}

		log.Info("device directory: sqlite", "path", cfg.Directory.Database.Path)
		return directory.NewSQLiteSource(db.DB), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown directory source %q", cfg.Directory.Source)
	}
}

// getConfigPath returns the configuration file path.
// Uses SIGNFLEET_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SIGNFLEET_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
