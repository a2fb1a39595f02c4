package properties

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptySchema is returned by Validate for a schema without keys.
	ErrEmptySchema = errors.New("schema has no keys")
	// ErrInvalidKey is returned by Validate for keys that could never be parsed.
	ErrInvalidKey = errors.New("invalid schema key")
)

// Schema maps key names to their declared kind.
type Schema map[string]Kind

// Lookup returns the kind declared for key.
func (s Schema) Lookup(key string) (Kind, bool) {
	kind, ok := s[key]

	return kind, ok
}

// Keys returns the declared keys in lexical order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Normalized returns a copy of s with every key passed through normalize.
func (s Schema) Normalized(normalize func(string) string) Schema {
	out := make(Schema, len(s))
	for key, kind := range s {
		out[normalize(key)] = kind
	}

	return out
}

// Validate implements config.Validator.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchema
	}

	for _, key := range s.Keys() {
		if key == "" || strings.ContainsAny(key, "= \t\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}

		if s[key] == Invalid || s[key] > BoolList {
			return fmt.Errorf("%w: %q", ErrUnknownKind, key)
		}
	}

	return nil
}
