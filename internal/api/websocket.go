package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket constants.
const (
	// wsWriteTimeout bounds each frame write to a slow client.
	wsWriteTimeout = 10 * time.Second

	// defaultStatusInterval is used when the configured interval is unset.
	defaultStatusInterval = 5 * time.Second

	// wsMessageTypeStatus labels fleet status frames.
	wsMessageTypeStatus = "fleet_status"
)

// WSMessage is the envelope for frames pushed to stream clients.
type WSMessage struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// upgrader configures the WebSocket upgrader.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// Origin checking is handled by CORS middleware
		return true
	},
}

// handleWebSocket serves the live fleet status stream.
//
// GET /api/v1/ws
//
// On connect the client receives an immediate fleet status frame, then a
// fresh one every status interval until the client disconnects or the
// server shuts down. Each frame is a full probe of the fleet, so a client
// never sees stale entries mixed with fresh ones.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close() //nolint:errcheck

	s.logger.Debug("websocket status stream connected", "remote", r.RemoteAddr)

	// Read pump: the client sends nothing we act on, but reading is how
	// close frames and dead connections are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := time.Duration(s.wsCfg.StatusInterval) * time.Second
	if interval <= 0 {
		interval = defaultStatusInterval
	}

	srvCtx := s.ctx
	if srvCtx == nil {
		srvCtx = context.Background()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.pushStatus(conn, r); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-done:
			s.logger.Debug("websocket status stream closed by client", "remote", r.RemoteAddr)
			return
		case <-srvCtx.Done():
			return
		case <-r.Context().Done():
			return
		}
	}
}

// pushStatus probes the fleet and writes one status frame.
func (s *Server) pushStatus(conn *websocket.Conn, r *http.Request) error {
	entries, err := s.fleet.ProbeStatus(r.Context())
	if err != nil {
		s.logger.Warn("status stream probe failed", "error", err)
		// Directory trouble is transient from the stream's point of view;
		// keep the connection and try again next tick.
		return nil
	}

	msg := WSMessage{
		Type:      wsMessageTypeStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   entries,
	}

	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
