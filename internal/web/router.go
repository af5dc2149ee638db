package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
	"github.com/Biskuitttt/Suratt/internal/web/handler"
	"github.com/Biskuitttt/Suratt/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	AccessService *access.Service
	AuthService   *auth.Service
	Site          config.Site
	SecureCookies bool
	StaticDir     string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Site)
	accessHandler := handler.NewAccessHandler(cfg.AccessService, cfg.AuthService, cfg.SecureCookies, cfg.Logger)
	specialHandler := handler.NewSpecialHandler(cfg.AccessService, cfg.Site, cfg.Logger)

	// Static files, photos included
	if cfg.StaticDir != "" {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
		if cfg.Site.ParticipantsDir != "" {
			r.PathPrefix("/" + cfg.Site.ParticipantsDir + "/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
		}
	}

	// Gate
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/access", accessHandler.Submit).Methods(http.MethodPost)
	public.HandleFunc("/logout", accessHandler.Logout).Methods(http.MethodPost)

	// Behind the gate
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/special", specialHandler.View).Methods(http.MethodGet)

	return r
}
