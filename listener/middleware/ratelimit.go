package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucket is a token bucket shared by every request of one middleware.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	burst  float64
	rate   float64
	last   time.Time
	now    func() time.Time
}

func newBucket(rate float64, burst int, now func() time.Time) *bucket {
	return &bucket{
		tokens: float64(burst),
		burst:  float64(burst),
		rate:   rate,
		last:   now(),
		now:    now,
	}
}

// take consumes one token, or reports how long until one is available.
func (b *bucket) take() (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := max(0.0, now.Sub(b.last).Seconds())
	b.tokens = math.Min(b.burst, b.tokens+elapsed*b.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--

		return true, 0
	}

	return false, time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// RateLimit admits requestsPerSecond requests on average with bursts of up to
// burst. Rejected requests get 429 Too Many Requests and a Retry-After header
// in whole seconds. Non-positive arguments fall back to 1.
func RateLimit(requestsPerSecond float64, burst int, logger *slog.Logger) Middleware {
	return rateLimit(requestsPerSecond, burst, loggerOrDefault(logger), time.Now)
}

func rateLimit(requestsPerSecond float64, burst int, logger *slog.Logger, now func() time.Time) Middleware {
	if requestsPerSecond <= 0 {
		logger.Warn("middleware: requests per second must be positive, using 1", "provided", requestsPerSecond)

		requestsPerSecond = 1
	}

	if burst <= 0 {
		logger.Warn("middleware: burst must be positive, using 1", "provided", burst)

		burst = 1
	}

	limiter := newBucket(requestsPerSecond, burst, now)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := limiter.take()
			if !ok {
				seconds := max(int(math.Ceil(wait.Seconds())), 1)

				logger.Debug("rate limited", "path", r.URL.Path, "request_id", GetRequestID(r.Context()))

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
