package args

import (
	"errors"
	"strings"
	"unicode"

	"github.com/0xalexb/kvline/parse"
)

var (
	// ErrNoArguments is the cause of an ArgError for an empty argument list.
	ErrNoArguments = errors.New("no arguments")
	// ErrEmptyArgument is the cause of an ArgError for an empty argument.
	ErrEmptyArgument = errors.New("empty argument")
	// ErrWhitespace is the cause of an ArgError for an argument holding whitespace.
	ErrWhitespace = errors.New("argument contains whitespace")
)

// Fetcher implements config.DataFetcher for a command line.
type Fetcher struct {
	line string
}

// NewFetcher returns a constructor that builds the command line from argv.
func NewFetcher(argv []string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		line, err := CommandLine(argv)
		if err != nil {
			return nil, err
		}

		return &Fetcher{line: line}, nil
	}
}

// CommandLine joins argv with single spaces. It fails with an ArgError when
// argv is empty or when an argument would not survive word splitting; the
// error offset points at the argument in the joined line.
func CommandLine(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", parse.NewError(parse.ArgError, -1, "", ErrNoArguments)
	}

	offset := 0

	for _, arg := range argv {
		if arg == "" {
			return "", parse.NewError(parse.ArgError, offset, arg, ErrEmptyArgument)
		}

		if strings.ContainsFunc(arg, unicode.IsSpace) {
			return "", parse.NewError(parse.ArgError, offset, arg, ErrWhitespace)
		}

		offset += len(arg) + 1
	}

	return strings.Join(argv, " "), nil
}

// Fetch returns the command line.
func (f *Fetcher) Fetch() ([]byte, error) {
	return []byte(f.line), nil
}
