package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultCommentMarkers are the characters that start a comment token.
const DefaultCommentMarkers = "#%"

//nolint:gochecknoglobals // compiled once, read-only.
var (
	// LinePattern matches one non-empty line, without its CR/LF terminator.
	LinePattern = regexp.MustCompile(`[^\r\n]+`)
	// WordPattern matches one run of non-whitespace characters.
	WordPattern = regexp.MustCompile(`\S+`)
)

// Tokenizer splits a buffer into Tokens, one per non-overlapping match of its
// pattern. A Tokenizer is immutable and safe for concurrent use.
type Tokenizer struct {
	pattern *regexp.Regexp
	markers string
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithCommentMarkers drops every token whose first character is one of
// markers. An empty string disables filtering.
func WithCommentMarkers(markers string) TokenizerOption {
	return func(t *Tokenizer) {
		t.markers = markers
	}
}

// NewTokenizer returns a Tokenizer for pattern. Without options no comment
// filtering is applied.
func NewTokenizer(pattern *regexp.Regexp, opts ...TokenizerOption) *Tokenizer {
	tokenizer := &Tokenizer{pattern: pattern, markers: ""}

	for _, apply := range opts {
		apply(tokenizer)
	}

	return tokenizer
}

// Pattern returns the delimiter pattern.
func (t *Tokenizer) Pattern() *regexp.Regexp {
	return t.pattern
}

// Tokenize returns the matches of the pattern in buf, in order, minus
// comment tokens. Empty matches are never returned. When no token remains
// the error has Kind Empty.
func (t *Tokenizer) Tokenize(buf string) ([]Token, error) {
	matches := t.pattern.FindAllStringIndex(buf, -1)
	tokens := make([]Token, 0, len(matches))

	for _, match := range matches {
		if match[0] == match[1] {
			continue
		}

		tok := TokenAt(buf, match[0], match[1])
		if t.isComment(tok) {
			continue
		}

		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		return nil, NewError(Empty, -1, "", nil)
	}

	return tokens, nil
}

func (t *Tokenizer) isComment(tok Token) bool {
	if t.markers == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(tok.Text())

	return strings.ContainsRune(t.markers, first)
}

// Tokenize splits buf on pattern, dropping tokens that start with one of
// markers.
func Tokenize(buf string, pattern *regexp.Regexp, markers string) ([]Token, error) {
	return NewTokenizer(pattern, WithCommentMarkers(markers)).Tokenize(buf)
}

// SplitLines returns the non-empty lines of buf, skipping lines that start
// with '#' or '%'.
func SplitLines(buf string) ([]Token, error) {
	return Tokenize(buf, LinePattern, DefaultCommentMarkers)
}

// SplitWords returns the whitespace-separated words of buf, skipping words
// that start with '#' or '%'.
func SplitWords(buf string) ([]Token, error) {
	return Tokenize(buf, WordPattern, DefaultCommentMarkers)
}
