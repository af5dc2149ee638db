package handler

import (
	"net/http"

	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/web/middleware"
	"github.com/Biskuitttt/Suratt/internal/web/templates/layout"
	"github.com/Biskuitttt/Suratt/internal/web/templates/pages"
)

// HomeHandler handles the gate page
type HomeHandler struct {
	site config.Site
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(site config.Site) *HomeHandler {
	return &HomeHandler{site: site}
}

// Home renders the gate page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	flash := middleware.GetFlash(r.Context())

	data := pages.HomeData{
		PageData: layout.PageData{
			SiteName: h.site.Title,
			Flash:    flash,
			Signed:   session != nil,
		},
		Subtitle:    h.site.Subtitle,
		Description: h.site.Description,
		Date:        h.site.Date,
		Input:       r.URL.Query().Get("code"),
	}

	render(w, r, pages.Home(data))
}
