package listener

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithConfig replaces the whole listener configuration, typically one loaded
// from a file.
func WithConfig(loaded Config) Option {
	return func(cfg *Config) {
		*cfg = loaded
	}
}

// WithShutdownTimeout sets how many seconds Stop waits for in-flight requests.
func WithShutdownTimeout(secs uint) Option {
	return func(cfg *Config) {
		cfg.ShutdownTimeout = secs
	}
}
