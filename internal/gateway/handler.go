package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionChecker defines what the gateway needs from session handling:
// whether a session ID refers to a live session.
type SessionChecker interface {
	Has(sessionID uuid.UUID) bool
}

// Handler serves the websocket endpoint for session event feeds.
type Handler struct {
	manager  *ConnectionManager
	sessions SessionChecker
}

// NewHandler creates the websocket HTTP handler. sessions may be nil, in
// which case any well-formed session ID is accepted.
func NewHandler(manager *ConnectionManager, sessions SessionChecker) *Handler {
	return &Handler{manager: manager, sessions: sessions}
}

// ServeHTTP upgrades GET /ws?session_id=<uuid> to a websocket subscribed to
// that session's events.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("session_id")
	if raw == "" {
		http.Error(w, "session_id query parameter is required", http.StatusBadRequest)
		return
	}

	sessionID, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "session_id must be a valid UUID", http.StatusBadRequest)
		return
	}

	if h.sessions != nil && !h.sessions.Has(sessionID) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err := h.manager.UpgradeConnection(w, r, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("websocket upgrade failed")
	}
}
