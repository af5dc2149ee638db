package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Biskuitttt/Suratt/internal/api/handler"
	"github.com/Biskuitttt/Suratt/internal/api/middleware"
	"github.com/Biskuitttt/Suratt/internal/api/response"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AccessService *access.Service
	AuthService   *auth.Service
	// MetricsHandler serves /api/v1/metrics when set
	MetricsHandler http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accessHandler := handler.NewAccessHandler(cfg.AccessService, cfg.AuthService, cfg.Logger)
	codesHandler := handler.NewCodesHandler(cfg.AccessService)
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	debugHandler := handler.NewDebugHandler(cfg.AccessService, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	debugMiddleware := middleware.DebugAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Gate and resolution routes (no auth)
	api.HandleFunc("/access", accessHandler.Access).Methods(http.MethodPost)
	api.HandleFunc("/access/{input}/photo", accessHandler.Photo).Methods(http.MethodGet)
	api.HandleFunc("/access/{input}/validate", accessHandler.Validate).Methods(http.MethodGet)
	api.HandleFunc("/codes", codesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/codes/{input}/images", codesHandler.Images).Methods(http.MethodGet)

	// Session routes
	session := api.PathPrefix("/session").Subrouter()
	session.Use(authMiddleware)
	session.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	session.HandleFunc("", sessionHandler.Delete).Methods(http.MethodDelete)

	// Debug routes (bearer debug token)
	debug := api.PathPrefix("/debug").Subrouter()
	debug.Use(debugMiddleware)
	debug.HandleFunc("/resolve/{input}", debugHandler.Resolve).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if cfg.MetricsHandler != nil {
		api.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
