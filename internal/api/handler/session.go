package handler

import (
	"net/http"

	"github.com/Biskuitttt/Suratt/internal/api/middleware"
	"github.com/Biskuitttt/Suratt/internal/api/response"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

// SessionHandler handles visitor session endpoints
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.SessionResponseFromSession(session))
}

// Delete handles DELETE /api/v1/session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.InvalidateSession(session.Token)
	response.NoContent(w)
}
