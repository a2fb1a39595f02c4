package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is the deadline used when a non-positive duration is given.
const DefaultTimeout = 30 * time.Second

// Timeout returns a middleware that bounds handler time with
// http.TimeoutHandler. A request over the deadline gets 503 Service Unavailable.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		slog.Warn("middleware: duration must be positive, using default",
			"provided", duration, "default", DefaultTimeout)

		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, "Service Unavailable")
	}
}
