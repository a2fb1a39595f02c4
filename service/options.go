package service

import (
	"log/slog"
	"time"

	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
)

// Default limits.
const (
	DefaultMaxBodyBytes int64 = 1 << 20
	DefaultTimeout            = 10 * time.Second
)

type options struct {
	maxBodyBytes   int64
	timeout        time.Duration
	logger         *slog.Logger
	schema         properties.Schema
	commentMarkers string
	rate           float64
	burst          int
}

func defaultOptions() options {
	return options{
		maxBodyBytes:   DefaultMaxBodyBytes,
		timeout:        DefaultTimeout,
		logger:         nil,
		schema:         nil,
		commentMarkers: parse.DefaultCommentMarkers,
		rate:           0,
		burst:          0,
	}
}

// Option configures the handler.
type Option func(*options)

// WithMaxBodyBytes limits request bodies; larger ones get 413.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		o.maxBodyBytes = n
	}
}

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used by the handler and its middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDefaultSchema is used for requests that carry no schema of their own.
func WithDefaultSchema(schema properties.Schema) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithCommentMarkers overrides the comment markers, "#%" by default.
func WithCommentMarkers(markers string) Option {
	return func(o *options) {
		o.commentMarkers = markers
	}
}

// WithRateLimit admits rate requests per second with bursts of burst. A
// non-positive rate disables the limit.
func WithRateLimit(rate float64, burst int) Option {
	return func(o *options) {
		o.rate = rate
		o.burst = burst
	}
}
