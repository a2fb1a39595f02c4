package parse

import (
	"reflect"
	"strings"

	"github.com/0xalexb/kvline/result"
)

const fieldSeparator = ','

// SplitFields splits tok on ',' into views. An empty tok yields no fields;
// empty fields between separators are kept so that callers can reject them.
func SplitFields(tok Token) []Token {
	if tok.IsEmpty() {
		return nil
	}

	text := tok.Text()
	fields := make([]Token, 0, strings.Count(text, string(fieldSeparator))+1)
	start := 0

	for i := range len(text) {
		if text[i] == fieldSeparator {
			fields = append(fields, tok.Slice(start, i))
			start = i + 1
		}
	}

	return append(fields, tok.Slice(start, len(text)))
}

// ParseVector splits tok on ',' and converts every field with ParseScalar.
// It returns all values in order, or no values at all: the first failing
// field turns the whole call into a VectorValueNotParsed error. An empty tok
// is an EmptyVector error.
func ParseVector[T Scalar](tok Token) ([]T, error) {
	fields := SplitFields(tok)
	if len(fields) == 0 {
		return nil, errorAt(EmptyVector, tok, nil)
	}

	outcomes := make([]result.Result[T], len(fields))
	for i, field := range fields {
		outcomes[i] = result.From(ParseScalar[T](field))
	}

	values, failed, err := result.All(outcomes)
	if err != nil {
		return nil, errorAt(VectorValueNotParsed, fields[failed], err)
	}

	return values, nil
}

func setVector(dst reflect.Value, tok Token) error {
	fields := SplitFields(tok)
	if len(fields) == 0 {
		return errorAt(EmptyVector, tok, nil)
	}

	out := reflect.MakeSlice(dst.Type(), len(fields), len(fields))

	for i, field := range fields {
		err := setScalar(out.Index(i), field)
		if err != nil {
			return errorAt(VectorValueNotParsed, field, err)
		}
	}

	dst.Set(out)

	return nil
}
