package properties

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/kvline/parse"
)

// ErrUnknownKind is returned when a kind name cannot be decoded.
var ErrUnknownKind = errors.New("unknown kind")

// Kind is the declared type of a property value.
type Kind uint8

// Scalar kinds and their list forms.
const (
	Invalid Kind = iota
	Int
	Uint
	Float
	String
	Bool
	IntList
	UintList
	FloatList
	StringList
	BoolList
)

const listPrefix = "[]"

//nolint:gochecknoglobals // closed lookup table.
var scalarNames = map[Kind]string{
	Int:    "int",
	Uint:   "uint",
	Float:  "float",
	String: "string",
	Bool:   "bool",
}

// String returns the schema spelling of k, e.g. "uint" or "[]float".
func (k Kind) String() string {
	if k.IsList() {
		return listPrefix + k.Elem().String()
	}

	name, ok := scalarNames[k]
	if !ok {
		return "invalid"
	}

	return name
}

// IsList reports whether k holds a comma-separated vector.
func (k Kind) IsList() bool {
	return k >= IntList && k <= BoolList
}

// Elem returns the scalar kind of a list kind, or k itself.
func (k Kind) Elem() Kind {
	if k.IsList() {
		return k - IntList + Int
	}

	return k
}

// ListOf returns the list kind of a scalar kind.
func ListOf(k Kind) Kind {
	if k >= Int && k <= Bool {
		return k - Int + IntList
	}

	return Invalid
}

// ParseKind decodes a kind name. Names are case-insensitive and accept the
// aliases "integer", "unsigned", "double", "str" and "boolean"; list kinds
// are written "[]int" or "int[]".
func ParseKind(name string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(name))

	list := false

	switch {
	case strings.HasPrefix(norm, listPrefix):
		list = true
		norm = strings.TrimPrefix(norm, listPrefix)
	case strings.HasSuffix(norm, listPrefix):
		list = true
		norm = strings.TrimSuffix(norm, listPrefix)
	}

	var kind Kind

	switch norm {
	case "int", "integer", "int64":
		kind = Int
	case "uint", "unsigned", "uint64", "size_t":
		kind = Uint
	case "float", "double", "float64":
		kind = Float
	case "string", "str":
		kind = String
	case "bool", "boolean":
		kind = Bool
	default:
		return Invalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}

	if list {
		return ListOf(kind), nil
	}

	return kind, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k == Invalid || k > BoolList {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = kind

	return nil
}

// Parse converts tok to the Go value of k: int64, uint64, float64, string,
// bool, or a slice of one of those.
func (k Kind) Parse(tok parse.Token) (any, error) {
	switch k {
	case Int:
		return parse.ParseScalar[int64](tok)
	case Uint:
		return parse.ParseScalar[uint64](tok)
	case Float:
		return parse.ParseScalar[float64](tok)
	case String:
		return parse.ParseScalar[string](tok)
	case Bool:
		return parse.ParseScalar[bool](tok)
	case IntList:
		return parse.ParseVector[int64](tok)
	case UintList:
		return parse.ParseVector[uint64](tok)
	case FloatList:
		return parse.ParseVector[float64](tok)
	case StringList:
		return parse.ParseVector[string](tok)
	case BoolList:
		return parse.ParseVector[bool](tok)
	case Invalid:
	}

	return nil, parse.NewError(parse.ValueNotParsed, tok.Offset(), tok.Text(), fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k)))
}
