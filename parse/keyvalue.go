package parse

import (
	"errors"
	"strings"
)

const keyValueSeparator = '='

var (
	errNoSeparator     = errors.New("no '=' separator")
	errEmptyKey        = errors.New("empty key")
	errEmptyValue      = errors.New("empty value")
	errChainTooShallow = errors.New("value holds no further pair")
)

// Pair is a key and a value view split from one token.
type Pair struct {
	Key   Token
	Value Token
}

// SplitKeyValue splits tok at its first '='. The key is everything before it,
// the value everything after; the value is not split further and may contain
// more '='. Splitting fails when there is no '=', or when the first '=' is
// the first or last character.
//
// The value of a returned Pair can be passed back in to decompose chained
// assignments such as "a=b=c=35".
func SplitKeyValue(tok Token) (Pair, error) {
	text := tok.Text()

	idx := strings.IndexByte(text, keyValueSeparator)

	switch {
	case idx < 0:
		return Pair{}, errorAt(KeyValueNotParsed, tok, errNoSeparator)
	case idx == 0:
		return Pair{}, errorAt(KeyValueNotParsed, tok, errEmptyKey)
	case idx == len(text)-1:
		return Pair{}, NewError(KeyValueNotParsed, tok.Offset()+idx, text, errEmptyValue)
	}

	return Pair{
		Key:   tok.Slice(0, idx),
		Value: tok.Slice(idx+1, len(text)),
	}, nil
}

// SplitChain repeatedly applies SplitKeyValue to the value half until it no
// longer contains '='. It returns every key in order and the final value:
//
//	"a=b=c=35" -> keys [a b c], value "35"
//
// The loop ends because each value is strictly shorter than its source.
func SplitChain(tok Token) ([]Token, Token, error) {
	pair, err := SplitKeyValue(tok)
	if err != nil {
		return nil, Token{}, err
	}

	keys := []Token{pair.Key}

	for strings.IndexByte(pair.Value.Text(), keyValueSeparator) >= 0 {
		next, err := SplitKeyValue(pair.Value)
		if err != nil {
			return nil, Token{}, errorAt(KeyValueNotParsed, pair.Value, errors.Join(errChainTooShallow, err))
		}

		keys = append(keys, next.Key)
		pair = next
	}

	return keys, pair.Value, nil
}
