package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for the league feed
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleFeed upgrades to the feed; ?types=a,b limits the event types sent
func (h *WebSocketHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	var types []effects.Type
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, effects.Type(t))
			}
		}
	}

	// Upgrade writes its own HTTP error on failure.
	if err := h.connectionManager.UpgradeConnection(w, r, types); err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to encode connection stats")
	}
}

func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/league", h.HandleFeed)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
