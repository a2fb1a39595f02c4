package parse

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

var (
	errEmptyToken       = errors.New("empty token")
	errNegativeUnsigned = errors.New("negative value for unsigned type")
	errWhitespace       = errors.New("whitespace in string value")
	errNotFinite        = errors.New("value is not finite")
	errNotDecimal       = errors.New("value is not a decimal number")
	errUnsupportedType  = errors.New("unsupported destination type")
)

// Scalar lists the types a single token can be converted to.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~string | ~bool
}

// ParseScalar converts the whole of tok to T.
//
// No whitespace is trimmed and no trailing characters are tolerated, so "3.5"
// is not an int. For unsigned T a negative number is rejected even though it
// is syntactically an integer. String values must be non-empty and free of
// whitespace.
func ParseScalar[T Scalar](tok Token) (T, error) {
	var out T

	err := setScalar(reflect.ValueOf(&out).Elem(), tok)
	if err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// ParseInto converts tok into the value dst points to. dst must be a non-nil
// pointer to a Scalar type or to a slice of one; slices are parsed with the
// same rules as ParseVector.
func ParseInto(dst any, tok Token) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return errorAt(ValueNotParsed, tok, fmt.Errorf("%w: %T", errUnsupportedType, dst))
	}

	return ParseValue(ptr.Elem(), tok)
}

// ParseValue is ParseInto for a settable reflect.Value.
func ParseValue(dst reflect.Value, tok Token) error {
	if dst.Kind() == reflect.Slice {
		return setVector(dst, tok)
	}

	return setScalar(dst, tok)
}

func setScalar(dst reflect.Value, tok Token) error {
	text := tok.Text()
	if text == "" {
		return errorAt(ValueNotParsed, tok, errEmptyToken)
	}

	switch dst.Kind() { //nolint:exhaustive // remaining kinds are unsupported.
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, dst.Type().Bits())
		if err != nil {
			return errorAt(ValueNotParsed, tok, err)
		}

		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if isNegativeIntegral(text) {
			return errorAt(ValueNotParsed, tok, errNegativeUnsigned)
		}

		n, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, dst.Type().Bits())
		if err != nil {
			return errorAt(ValueNotParsed, tok, err)
		}

		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		// ParseFloat also takes hex mantissas and digit separators.
		if strings.ContainsAny(text, "xX_") {
			return errorAt(ValueNotParsed, tok, errNotDecimal)
		}

		f, err := strconv.ParseFloat(text, dst.Type().Bits())
		if err != nil {
			return errorAt(ValueNotParsed, tok, err)
		}

		if math.IsInf(f, 0) || math.IsNaN(f) {
			return errorAt(ValueNotParsed, tok, errNotFinite)
		}

		dst.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return errorAt(ValueNotParsed, tok, err)
		}

		dst.SetBool(b)
	case reflect.String:
		if strings.ContainsFunc(text, unicode.IsSpace) {
			return errorAt(ValueNotParsed, tok, errWhitespace)
		}

		dst.SetString(text)
	default:
		return errorAt(ValueNotParsed, tok, fmt.Errorf("%w: %s", errUnsupportedType, dst.Type()))
	}

	return nil
}

// isNegativeIntegral reports whether text reads as a negative signed integer.
// It runs before the unsigned conversion.
func isNegativeIntegral(text string) bool {
	n, err := strconv.ParseInt(text, 10, 64)

	return err == nil && n < 0
}
