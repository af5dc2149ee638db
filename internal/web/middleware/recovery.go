package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Biskuitttt/Suratt/internal/middleware"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Something went wrong</title></head>
<body>
<h1>Internal Server Error</h1>
<p>The letter could not be opened right now. Please try again in a moment.</p>
<p><a href="/">Back to the gate</a></p>
</body>
</html>`))
}
