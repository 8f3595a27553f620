package handler

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/middleware"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
)

// countMessage is the single frame type of the results stream.
type countMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ResultsHub tracks connected admin clients and pushes them the submission
// total whenever it changes. Writes are serialized under the hub mutex since
// both the connect path and the broadcast path send on the same conn.
type ResultsHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewResultsHub creates an empty ResultsHub.
func NewResultsHub() *ResultsHub {
	return &ResultsHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *ResultsHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *ResultsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

func (h *ResultsHub) send(conn *websocket.Conn, count int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return conn.WriteJSON(countMessage{Type: "count", Count: count})
}

// BroadcastCount pushes the new total to every connected client, dropping
// conns whose write fails.
func (h *ResultsHub) BroadcastCount(count int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(countMessage{Type: "count", Count: count}); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the admin live-results WebSocket stream.
type WSHandler struct {
	hub               *ResultsHub
	submissionService *service.SubmissionService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ResultsHub, submissionService *service.SubmissionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:               hub,
		submissionService: submissionService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// ResultsStream godoc
// WS /ws/v1/admin/results/stream?token=...
// Upgrades to WebSocket and pushes the submission count on connect and after
// every accepted submission.
func (h *WSHandler) ResultsStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.hub.add(conn)
	defer h.hub.remove(conn)

	wsLog := h.log.With().Int("admin_id", claims.UserID).Logger()
	wsLog.Info().Msg("Admin connected to results stream")

	count, err := h.submissionService.Count(c.Request.Context())
	if err == nil {
		if err := h.hub.send(conn, count); err != nil {
			return
		}
	}

	// Drain the read side until the client goes away. The stream is
	// push-only; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
	}
}
