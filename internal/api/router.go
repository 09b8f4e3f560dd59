package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Device directory
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)

			r.Route("/{address}", func(r chi.Router) {
				r.Put("/", s.handlePutDevice)
				r.Delete("/", s.handleDeleteDevice)
			})
		})

		// Fleet-wide operations
		r.Route("/fleet", func(r chi.Router) {
			r.Route("/assets", func(r chi.Router) {
				r.Get("/", s.handleListAssets)
				r.Get("/inactive", s.handleListInactiveAssets)
				r.Post("/", s.handleCreateAsset)
				r.Delete("/", s.handleDeleteAssets)
				r.Patch("/", s.handleSetAssetsEnabled)
			})

			r.Get("/status", s.handleFleetStatus)
		})

		// WebSocket status stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
