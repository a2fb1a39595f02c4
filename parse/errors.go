package parse

import (
	"errors"
	"fmt"
)

// Kind classifies a parse or input failure.
type Kind uint8

// Parsing kinds.
const (
	KeyValueNotParsed Kind = iota + 1
	KeyNotFound
	ValueNotParsed
	EmptyVector
	VectorValueNotParsed
)

// Input kinds, produced at the file / argument boundary and by the tokenizer.
const (
	FileNotOpened Kind = iota + 16
	FileIoError
	ArgError
	Empty
)

// Sentinels matched by errors.Is against any *Error of the same Kind.
var (
	ErrKeyValueNotParsed    = errors.New("key/value not parsed")
	ErrKeyNotFound          = errors.New("key not found")
	ErrValueNotParsed       = errors.New("value not parsed")
	ErrEmptyVector          = errors.New("empty vector")
	ErrVectorValueNotParsed = errors.New("vector value not parsed")
	ErrFileNotOpened        = errors.New("file not opened")
	ErrFileIO               = errors.New("file i/o error")
	ErrArg                  = errors.New("argument error")
	ErrEmpty                = errors.New("no tokens")
)

//nolint:gochecknoglobals // closed lookup table.
var kindSentinels = map[Kind]error{
	KeyValueNotParsed:    ErrKeyValueNotParsed,
	KeyNotFound:          ErrKeyNotFound,
	ValueNotParsed:       ErrValueNotParsed,
	EmptyVector:          ErrEmptyVector,
	VectorValueNotParsed: ErrVectorValueNotParsed,
	FileNotOpened:        ErrFileNotOpened,
	FileIoError:          ErrFileIO,
	ArgError:             ErrArg,
	Empty:                ErrEmpty,
}

//nolint:gochecknoglobals // closed lookup table.
var kindNames = map[Kind]string{
	KeyValueNotParsed:    "KeyValueNotParsed",
	KeyNotFound:          "KeyNotFound",
	ValueNotParsed:       "ValueNotParsed",
	EmptyVector:          "EmptyVector",
	VectorValueNotParsed: "VectorValueNotParsed",
	FileNotOpened:        "FileNotOpened",
	FileIoError:          "FileIoError",
	ArgError:             "ArgError",
	Empty:                "Empty",
}

// String returns the kind name, e.g. "ValueNotParsed".
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return name
}

// IsInput reports whether k is a file / argument / tokenizer kind.
func (k Kind) IsInput() bool {
	return k >= FileNotOpened
}

// Sentinel returns the Err variable matching k, or nil for an unknown kind.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// Error is the error returned by every operation of this package.
type Error struct {
	Kind Kind
	// Offset is the absolute byte offset of the offending text, -1 when unknown.
	Offset int
	// Token is the offending text (or the path, for file kinds).
	Token string
	// Err is the underlying cause, if any.
	Err error
}

// NewError returns an *Error of the given kind. Use an offset of -1 when no
// position is available.
func NewError(kind Kind, offset int, token string, cause error) *Error {
	return &Error{Kind: kind, Offset: offset, Token: token, Err: cause}
}

func errorAt(kind Kind, tok Token, cause error) *Error {
	return NewError(kind, tok.Offset(), tok.Text(), cause)
}

func (e *Error) Error() string {
	msg := e.Kind.Sentinel()
	if msg == nil {
		msg = errors.New(e.Kind.String())
	}

	out := msg.Error()

	if e.Offset >= 0 {
		out = fmt.Sprintf("%s at offset %d", out, e.Offset)
	}

	if e.Token != "" {
		out = fmt.Sprintf("%s: %q", out, e.Token)
	}

	if e.Err != nil {
		out = fmt.Sprintf("%s: %v", out, e.Err)
	}

	return out
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's Kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.Sentinel()

	return sentinel != nil && target == sentinel //nolint:errorlint,err113 // sentinel identity.
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}

	return 0, false
}
