package config

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrFetch wraps failures of the DataFetcher.
	ErrFetch = errors.New("reading data error")
	// ErrParse wraps failures of the Parser.
	ErrParse = errors.New("parsing error")
	// ErrValidate wraps failures of the Validator.
	ErrValidate = errors.New("validating error")
)

// Parser turns raw text into a target value.
//
// The path parameter selects a section of the input, using colon (:) as the
// separator for nested levels. For example:
//   - "server" selects keys "server.*" (key=value input) or the server mapping (YAML/TOML)
//   - "db:primary" selects "db.primary.*"
//   - "" (empty path) selects the whole input
//
// Parser implementations are responsible for path navigation internally.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher reads raw input: a file, standard input or the process arguments.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by targets that can check themselves after parsing.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by targets that fill unset fields after parsing.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// LoadOption configures Load and Provider.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger that reports applied defaults. slog.Default is
// used otherwise.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Provider returns a function that fetches, parses, sets defaults and validates target.
// The returned function has the shape of an Fx constructor.
func Provider[T any](target *T, path string, opts ...LoadOption) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		return Load(target, path, parser, fetcher, opts...)
	}
}

// Load runs the Provider pipeline once, without dependency injection.
func Load[T any](target *T, path string, parser Parser, fetcher DataFetcher, opts ...LoadOption) (*T, error) {
	options := loadOptions{logger: nil}
	for _, apply := range opts {
		apply(&options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	err = parser.Parse(data, target, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if defaulter, ok := any(target).(Defaulter); ok {
		if defaulter.SetDefaults() {
			options.logger.Info("defaults applied", slog.String("path", path))
		}
	}

	if validator, ok := any(target).(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidate, err)
		}
	}

	return target, nil
}
