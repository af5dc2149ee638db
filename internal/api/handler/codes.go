package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Biskuitttt/Suratt/internal/api/response"
	"github.com/Biskuitttt/Suratt/internal/services/access"
)

// CodesHandler handles access code listing endpoints
type CodesHandler struct {
	accessService *access.Service
}

// NewCodesHandler creates a new codes handler
func NewCodesHandler(accessService *access.Service) *CodesHandler {
	return &CodesHandler{accessService: accessService}
}

// List handles GET /api/v1/codes
func (h *CodesHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.accessService.AccessCodes(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CodesResponseFromModel(codes))
}

// Images handles GET /api/v1/codes/{input}/images
func (h *CodesHandler) Images(w http.ResponseWriter, r *http.Request) {
	images, err := h.accessService.GalleryImages(r.Context(), mux.Vars(r)["input"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GalleryResponseFromModel(images))
}
