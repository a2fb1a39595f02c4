package toml

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrEmptyData is returned when the input data is empty.
	ErrEmptyData = errors.New("empty data")
	// ErrPathNotFound is returned when a path segment names no key.
	ErrPathNotFound = errors.New("path not found")
	// ErrUndecodedKeys is returned in strict mode for keys the target does not use.
	ErrUndecodedKeys = errors.New("undecoded keys")
)

// Parser implements config.Parser for TOML data.
type Parser struct {
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrict fails when keys under the decoded table are left unused by the target.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// NewParser creates a new TOML parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{strict: false}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse decodes TOML data into target. A colon path selects a nested table,
// "db:primary" being the table [db.primary]. Empty path decodes the whole document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		meta, err := toml.Decode(string(data), target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return p.checkUndecoded(meta, nil)
	}

	parts := strings.Split(path, ":")

	var tables map[string]toml.Primitive

	meta, err := toml.Decode(string(data), &tables)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	for i, part := range parts {
		prim, ok := tables[part]
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		if i == len(parts)-1 {
			err = meta.PrimitiveDecode(prim, target)
			if err != nil {
				return fmt.Errorf("decoding path %q: %w", path, err)
			}

			break
		}

		tables = nil

		err = meta.PrimitiveDecode(prim, &tables)
		if err != nil {
			return fmt.Errorf("reading path %q: %w", path, err)
		}
	}

	return p.checkUndecoded(meta, parts)
}

func (p *Parser) checkUndecoded(meta toml.MetaData, prefix []string) error {
	if !p.strict {
		return nil
	}

	var unused []string

	for _, key := range meta.Undecoded() {
		if len(key) > len(prefix) && slices.Equal(key[:len(prefix)], prefix) {
			unused = append(unused, key.String())
		}
	}

	if len(unused) > 0 {
		return fmt.Errorf("%w: %s", ErrUndecodedKeys, strings.Join(unused, ", "))
	}

	return nil
}
