package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Biskuitttt/Suratt/internal/api/apierr"
	"github.com/Biskuitttt/Suratt/internal/api/request"
	"github.com/Biskuitttt/Suratt/internal/api/response"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

// AccessHandler handles gate and resolution endpoints
type AccessHandler struct {
	accessService *access.Service
	authService   *auth.Service
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(accessService *access.Service, authService *auth.Service, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
		authService:   authService,
		logger:        logger,
	}
}

// Access handles POST /api/v1/access
func (h *AccessHandler) Access(w http.ResponseWriter, r *http.Request) {
	var req request.AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		WriteError(w, NewInvalidRequestError("input is required"))
		return
	}

	identity, _, err := h.accessService.Resolve(r.Context(), req.Input)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !identity.Found {
		details := map[string]any{"seq": req.Seq}
		if codes, err := h.accessService.AccessCodes(r.Context()); err == nil {
			details["available_count"] = len(codes)
		} else {
			h.logger.Warn("could not count access codes", slog.String("error", err.Error()))
		}
		WriteError(w, apierr.WithDetails(model.ErrAccessCodeNotFound, details))
		return
	}

	session := h.authService.CreateSession(*identity)
	response.JSON(w, http.StatusOK, response.AccessResponseFromSession(session, req.Seq))
}

// Photo handles GET /api/v1/access/{input}/photo
func (h *AccessHandler) Photo(w http.ResponseWriter, r *http.Request) {
	res, err := h.accessService.ResolveAccessCode(r.Context(), mux.Vars(r)["input"])
	if err != nil {
		WriteError(w, err)
		return
	}

	photo := h.accessService.ResolvePhoto(r.Context(), res)
	response.JSON(w, http.StatusOK, response.PhotoResponseFrom(photo, res.Found))
}

// Validate handles GET /api/v1/access/{input}/validate
func (h *AccessHandler) Validate(w http.ResponseWriter, r *http.Request) {
	input := mux.Vars(r)["input"]

	valid, err := h.accessService.ValidateAccessCode(r.Context(), input)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValidateResponse{Input: strings.TrimSpace(input), Valid: valid})
}
