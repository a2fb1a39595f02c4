package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Token is a view into an immutable source string: the half-open byte range
// [start, end) of src. Text returns a substring, which shares memory with src.
type Token struct {
	src   string
	start int
	end   int
}

// NewToken returns a Token covering the whole of s.
func NewToken(s string) Token {
	return Token{src: s, start: 0, end: len(s)}
}

// TokenAt returns the view [start, end) of src. It panics if the range is out
// of bounds, like slicing a string would.
func TokenAt(src string, start, end int) Token {
	if start < 0 || end < start || end > len(src) {
		panic(fmt.Sprintf("parse: token range [%d:%d] out of bounds for length %d", start, end, len(src)))
	}

	return Token{src: src, start: start, end: end}
}

// Text returns the characters of the view.
func (t Token) Text() string {
	return t.src[t.start:t.end]
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return t.Text()
}

// Offset returns the absolute start offset in the source.
func (t Token) Offset() int {
	return t.start
}

// End returns the absolute end offset (exclusive) in the source.
func (t Token) End() int {
	return t.end
}

// Len returns the length of the view in bytes.
func (t Token) Len() int {
	return t.end - t.start
}

// IsEmpty reports whether the view has no characters.
func (t Token) IsEmpty() bool {
	return t.start == t.end
}

// Source returns the whole source string the view points into.
func (t Token) Source() string {
	return t.src
}

// Slice returns the sub-view [i, j) relative to t. Offsets of the result
// remain absolute.
func (t Token) Slice(i, j int) Token {
	return TokenAt(t.src, t.start+i, t.start+j)
}

// Position returns the 1-based line and column of the start of t.
func (t Token) Position() Position {
	return Locate(t.src, t.start)
}

// Position is a human-readable location in a source string.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String formats p as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate converts an absolute byte offset of src into a Position. Columns
// count runes. Offsets outside src are clamped.
func Locate(src string, offset int) Position {
	offset = max(0, min(offset, len(src)))
	before := src[:offset]

	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1

	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
		Offset: offset,
	}
}
