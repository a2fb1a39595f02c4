// Package listener runs named HTTP listeners inside the Fx container. The
// parse service is served by one of them; their settings may come from
// options or from a key=value file loaded with config.Provider.
package listener

import (
	"errors"
	"time"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// Default timeouts, in seconds.
const (
	DefaultReadHeaderTimeout = 10
	DefaultShutdownTimeout   = 15
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrListenFailed is returned when the server fails to listen on the configured address.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when the server fails to shut down gracefully.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
)

// Config holds the configuration for an HTTP listener. The kv tags let a
// "listener" section of a key=value file fill it:
//
//	listener.address=:9090
//	listener.read_header_timeout=5
type Config struct {
	Address string `kv:"address"`
	// ReadHeaderTimeout and ShutdownTimeout are in seconds.
	ReadHeaderTimeout uint `kv:"read_header_timeout"`
	ShutdownTimeout   uint `kv:"shutdown_timeout"`
}

// SetDefaults fills unset fields and reports whether any changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
		changed = true
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	return nil
}

func seconds(n uint) time.Duration {
	return time.Duration(n) * time.Second
}
