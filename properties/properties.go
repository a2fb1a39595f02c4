package properties

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/0xalexb/kvline/parse"

	"github.com/goccy/go-yaml"
)

// ErrKindMismatch is returned by the typed getters when a key holds a value
// of another kind.
var ErrKindMismatch = errors.New("kind mismatch")

// Value is one parsed property.
type Value struct {
	Kind Kind
	// Data is int64, uint64, float64, string, bool, or a slice of those.
	Data any
	// Offset is the absolute offset of the value text in its source, -1 when unknown.
	Offset int
}

// Properties is an ordered, caller-owned key/value store. It is not safe for
// concurrent mutation.
type Properties struct {
	keys   []string
	values map[string]Value
}

// New returns an empty store.
func New() *Properties {
	return &Properties{
		keys:   nil,
		values: make(map[string]Value),
	}
}

// Set stores v under key. Replacing a key keeps its original position.
func (p *Properties) Set(key string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}

	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}

	p.values[key] = v
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (Value, bool) {
	v, ok := p.values[key]

	return v, ok
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.values[key]

	return ok
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)

	return out
}

// Map returns the plain key -> Data mapping.
func (p *Properties) Map() map[string]any {
	out := make(map[string]any, len(p.keys))
	for _, key := range p.keys {
		out[key] = p.values[key].Data
	}

	return out
}

// MarshalJSON encodes the store as a JSON object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("marshal property key: %w", err)
		}

		data, err := json.Marshal(p.values[key].Data)
		if err != nil {
			return nil, fmt.Errorf("marshal property %q: %w", key, err)
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(data)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes the store as a YAML mapping in insertion order.
func (p *Properties) MarshalYAML() (any, error) {
	slice := make(yaml.MapSlice, 0, len(p.keys))
	for _, key := range p.keys {
		slice = append(slice, yaml.MapItem{Key: key, Value: p.values[key].Data})
	}

	return slice, nil
}

// Lookup returns the data stored under key as T.
func Lookup[T any](p *Properties, key string) (T, error) {
	var zero T

	v, ok := p.values[key]
	if !ok {
		return zero, parse.NewError(parse.KeyNotFound, -1, key, nil)
	}

	typed, ok := v.Data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %s, not %T", ErrKindMismatch, key, v.Kind, zero)
	}

	return typed, nil
}

// Int returns an int property.
func (p *Properties) Int(key string) (int64, error) { return Lookup[int64](p, key) }

// Uint returns a uint property.
func (p *Properties) Uint(key string) (uint64, error) { return Lookup[uint64](p, key) }

// Float returns a float property.
func (p *Properties) Float(key string) (float64, error) { return Lookup[float64](p, key) }

// Text returns a string property.
func (p *Properties) Text(key string) (string, error) { return Lookup[string](p, key) }

// Bool returns a bool property.
func (p *Properties) Bool(key string) (bool, error) { return Lookup[bool](p, key) }

// Ints returns an int list property.
func (p *Properties) Ints(key string) ([]int64, error) { return Lookup[[]int64](p, key) }

// Uints returns a uint list property.
func (p *Properties) Uints(key string) ([]uint64, error) { return Lookup[[]uint64](p, key) }

// Floats returns a float list property.
func (p *Properties) Floats(key string) ([]float64, error) { return Lookup[[]float64](p, key) }

// Strings returns a string list property.
func (p *Properties) Strings(key string) ([]string, error) { return Lookup[[]string](p, key) }

// Bools returns a bool list property.
func (p *Properties) Bools(key string) ([]bool, error) { return Lookup[[]bool](p, key) }
