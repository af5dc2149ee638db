package middleware

import (
	"context"
	"net/http"

	apimiddleware "github.com/Biskuitttt/Suratt/internal/api/middleware"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
)

// GetSession retrieves the visitor's session from the request context
// Returns nil if the visitor has not passed the gate
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// Auth returns middleware that requires a session
// Redirects to the gate if there is none
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromCookie(r, authService)
			if session == nil {
				SetFlash(w, FlashInfo, "Enter your name to open the letter")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromCookie(r, authService)
			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getSessionFromCookie(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(apimiddleware.SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
