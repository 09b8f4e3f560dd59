// Package api provides the HTTP REST API and WebSocket server for Sign Fleet Core.
//
// It exposes the device directory, fleet-wide asset lifecycle operations, and
// the live status stream to operator tooling (web dashboards, scripts).
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/sign-fleet-core/internal/directory"
	"github.com/nerrad567/sign-fleet-core/internal/fleet"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/config"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Fleet is the orchestration surface the API exposes.
// Satisfied by *fleet.Orchestrator; tests substitute doubles.
type Fleet interface {
	ListDevices(ctx context.Context) ([]directory.Device, error)
	CreateFileAsset(ctx context.Context, meta fleet.AssetMetadata, addresses []string) (fleet.Result, error)
	CreateURLAsset(ctx context.Context, meta fleet.AssetMetadata, addresses []string) (fleet.Result, error)
	DeleteAssets(ctx context.Context, refs []string) (fleet.Result, error)
	SetAssetsEnabled(ctx context.Context, refs []string, enabled bool) (fleet.Result, error)
	ListAllAssets(ctx context.Context) (map[string]fleet.DeviceAssets, error)
	ListInactiveAssets(ctx context.Context) (map[string]fleet.DeviceAssets, error)
	ProbeStatus(ctx context.Context) ([]fleet.StatusEntry, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	WS      config.WebSocketConfig
	Logger  *logging.Logger
	Fleet   Fleet
	Source  directory.Source
	Version string
}

// Server is the HTTP API server for Sign Fleet Core.
//
// It manages the HTTP listener, routes, middleware, and the WebSocket status
// stream. The server is created with New() and started with Start().
type Server struct {
	cfg     config.APIConfig
	wsCfg   config.WebSocketConfig
	logger  *logging.Logger
	fleet   Fleet
	source  directory.Source
	version string
	server  *http.Server
	ctx     context.Context    // server lifetime, bounds WebSocket streams
	cancel  context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, fleet, directory source)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Fleet == nil {
		return nil, fmt.Errorf("fleet orchestrator is required")
	}
	if deps.Source == nil {
		return nil, fmt.Errorf("directory source is required")
	}

	return &Server{
		cfg:     deps.Config,
		wsCfg:   deps.WS,
		logger:  deps.Logger,
		fleet:   deps.Fleet,
		source:  deps.Source,
		version: deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation of background goroutines
//
// Returns:
//   - error: If the server fails to start (port in use, etc.)
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop WebSocket streams independently
	// of the parent context.
	s.ctx, s.cancel = context.WithCancel(ctx)

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
