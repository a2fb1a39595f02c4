package kv

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
)

// Policy decides what happens to entries that fail to parse.
type Policy int

const (
	// Abort returns the first failing entry.
	Abort Policy = iota
	// Skip logs failing entries and continues.
	Skip
	// Collect continues and returns every failing entry.
	Collect
)

// String returns the lowercase policy name.
func (p Policy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	case Collect:
		return "collect"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy decodes "abort", "skip" or "collect".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "abort", "":
		return Abort, nil
	case "skip":
		return Skip, nil
	case "collect":
		return Collect, nil
	default:
		return Abort, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithPattern sets the token pattern, parse.LinePattern by default. Use
// parse.WordPattern for command lines.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(p *Parser) {
		p.pattern = pattern
	}
}

// WithCommentMarkers sets the comment marker characters, "#%" by default.
func WithCommentMarkers(markers string) Option {
	return func(p *Parser) {
		p.markers = markers
	}
}

// WithSchema declares the key types used when the target is a *properties.Properties.
func WithSchema(schema properties.Schema) Option {
	return func(p *Parser) {
		p.schema = schema
	}
}

// WithPolicy sets the failure policy, Abort by default.
func WithPolicy(policy Policy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithKeyNormalization matches keys after parse.NormalizeKey, so that
// "Max_Count" in the input matches a "maxcount" schema entry or field.
func WithKeyNormalization() Option {
	return func(p *Parser) {
		p.normalize = parse.NormalizeKey
	}
}

// WithLogger sets the logger used by the Skip policy. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}
