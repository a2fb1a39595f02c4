package middleware

import (
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize is the body limit used when a non-positive size is given.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize returns a middleware that limits the size of incoming request
// bodies using http.MaxBytesReader. Handlers that read past the limit get an
// *http.MaxBytesError and should respond with 413 Request Entity Too Large.
//
// If bytes is zero or negative, DefaultMaxRequestSize is used and a warning is logged.
func MaxRequestSize(bytes int64) func(http.Handler) http.Handler {
	if bytes <= 0 {
		slog.Warn("middleware: bytes must be positive, using default",
			"provided", bytes, "default", DefaultMaxRequestSize)

		bytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, bytes)
			next.ServeHTTP(w, r)
		})
	}
}
