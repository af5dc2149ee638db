package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Biskuitttt/Suratt/internal/api/response"
	"github.com/Biskuitttt/Suratt/internal/services/access"
)

// DebugHandler exposes resolution traces for manual testing
type DebugHandler struct {
	accessService *access.Service
	logger        *slog.Logger
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(accessService *access.Service, logger *slog.Logger) *DebugHandler {
	return &DebugHandler{accessService: accessService, logger: logger}
}

// Resolve handles GET /api/v1/debug/resolve/{input}
func (h *DebugHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	input := mux.Vars(r)["input"]

	identity, res, err := h.accessService.Resolve(r.Context(), input)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("debug resolution",
		slog.String("input", res.Input),
		slog.Bool("found", res.Found),
		slog.Int("attempts", len(res.Attempts)),
	)
	response.JSON(w, http.StatusOK, response.DebugResponseFrom(identity, res))
}
