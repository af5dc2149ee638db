package handler

import (
	"log/slog"
	"net/http"

	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/web/middleware"
	"github.com/Biskuitttt/Suratt/internal/web/templates/layout"
	"github.com/Biskuitttt/Suratt/internal/web/templates/pages"
)

// SpecialHandler renders the personal page behind the gate
type SpecialHandler struct {
	access *access.Service
	site   config.Site
	logger *slog.Logger
}

// NewSpecialHandler creates a new SpecialHandler
func NewSpecialHandler(accessService *access.Service, site config.Site, logger *slog.Logger) *SpecialHandler {
	return &SpecialHandler{
		access: accessService,
		site:   site,
		logger: logger.With(slog.String("component", "web-special")),
	}
}

// View renders the letter for the session's identity
func (h *SpecialHandler) View(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	identity := session.Identity

	data := pages.SpecialData{
		PageData: layout.PageData{
			Title:    identity.DisplayName,
			SiteName: h.site.Title,
			Flash:    middleware.GetFlash(r.Context()),
			Signed:   true,
		},
		Identity:    identity,
		Subtitle:    h.site.Subtitle,
		Date:        h.site.Date,
		PlaylistURL: h.site.PlaylistURL,
	}

	// A failed gallery listing still renders the letter
	if identity.Key != "" {
		images, err := h.access.GalleryImages(r.Context(), identity.Input)
		if err != nil {
			h.logger.Warn("gallery unavailable",
				slog.String("key", identity.Key),
				slog.String("error", err.Error()),
			)
		}
		data.Gallery = images
	}

	render(w, r, pages.Special(data))
}
