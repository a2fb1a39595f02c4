package kvline

import (
	"io"

	"github.com/0xalexb/kvline/listener"
	"github.com/0xalexb/kvline/logging"
	"github.com/0xalexb/kvline/service"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat logging.Format
	LogWriter io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithParseService adds the HTTP parse service and a listener serving it,
// both registered under name.
func WithParseService(name string, serviceOpts []service.Option, listenerOpts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules,
			service.NewModule(name, serviceOpts...),
			listener.NewModule(name, listenerOpts...),
		)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects JSON (default) or text log output.
func WithLogFormat(format logging.Format) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogWriter sends logs to w instead of standard error.
func WithLogWriter(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogWriter = w
	}
}
