package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apimiddleware "github.com/Biskuitttt/Suratt/internal/api/middleware"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
	"github.com/Biskuitttt/Suratt/internal/web/middleware"
)

const defaultLanding = "/special"

// AccessHandler handles the gate form and leaving
type AccessHandler struct {
	access        *access.Service
	auth          *auth.Service
	secureCookies bool
	logger        *slog.Logger
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(accessService *access.Service, authService *auth.Service, secureCookies bool, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		access:        accessService,
		auth:          authService,
		secureCookies: secureCookies,
		logger:        logger.With(slog.String("component", "web-access")),
	}
}

// Submit handles the gate form
func (h *AccessHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	input := strings.TrimSpace(r.FormValue("code"))
	if input == "" {
		middleware.SetFlash(w, middleware.FlashError, "Please enter your name")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	identity, _, err := h.access.Resolve(r.Context(), input)
	if err != nil {
		h.logger.Warn("gate resolution failed", slog.String("input", input), slog.String("error", err.Error()))
		message := "Something went wrong, please try again"
		if errors.Is(err, model.ErrInvalidInput) {
			message = "Please enter your name"
		}
		middleware.SetFlash(w, middleware.FlashError, message)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !identity.Found {
		middleware.SetFlash(w, middleware.FlashError, "We could not find that name")
		http.Redirect(w, r, "/?code="+url.QueryEscape(input), http.StatusSeeOther)
		return
	}

	session := h.auth.CreateSession(*identity)
	h.setSessionCookie(w, session)

	landing := defaultLanding
	if target, ok := safeLanding(identity.RedirectURL); ok {
		landing = target
	} else if identity.RedirectURL != "" {
		h.logger.Warn("ignoring unsafe redirect", slog.String("code", identity.CanonicalName), slog.String("redirect", identity.RedirectURL))
	}
	http.Redirect(w, r, landing, http.StatusSeeOther)
}

// safeLanding accepts an absolute http(s) URL or a path on this site.
// Scheme-relative and backslash forms are refused.
func safeLanding(raw string) (string, bool) {
	if raw == "" || strings.ContainsAny(raw, "\\\r\n") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", false
		}
		return u.String(), true
	}
	if u.Host != "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", false
	}
	return raw, true
}

// Logout ends the session and returns to the gate
func (h *AccessHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(apimiddleware.SessionCookieName); err == nil {
		h.auth.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     apimiddleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, middleware.FlashInfo, "See you again")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccessHandler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     apimiddleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
