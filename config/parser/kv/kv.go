package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
	"github.com/0xalexb/kvline/result"

	"go.uber.org/multierr"
)

var (
	// ErrUnsupportedTarget is returned when the target is neither a
	// *properties.Properties nor a non-nil pointer to a struct.
	ErrUnsupportedTarget = errors.New("unsupported target")
	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("unknown policy")
)

const pathSeparator = ":"

// Parser implements config.Parser for key=value text. It is immutable after
// construction and safe for concurrent use.
type Parser struct {
	pattern   *regexp.Regexp
	markers   string
	tokenizer *parse.Tokenizer
	schema    properties.Schema
	policy    Policy
	normalize func(string) string
	logger    *slog.Logger
}

// NewParser creates a Parser. By default it splits lines, skips '#' and '%'
// comments, aborts on the first error and matches keys exactly.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{
		pattern:   parse.LinePattern,
		markers:   parse.DefaultCommentMarkers,
		tokenizer: nil,
		schema:    nil,
		policy:    Abort,
		normalize: nil,
		logger:    nil,
	}

	for _, apply := range opts {
		apply(parser)
	}

	parser.tokenizer = parse.NewTokenizer(parser.pattern, parse.WithCommentMarkers(parser.markers))

	if parser.normalize == nil {
		parser.normalize = func(s string) string { return s }
	}

	if parser.schema != nil {
		parser.schema = parser.schema.Normalized(parser.normalize)
	}

	return parser
}

// Entry is one token of the input with its key/value split.
type Entry struct {
	Token parse.Token
	Pair  result.Result[parse.Pair]
}

// Entries tokenizes text and splits every token. Only an empty input is an
// error here; bad tokens are reported through Entry.Pair.
func (p *Parser) Entries(text string) ([]Entry, error) {
	tokens, err := p.tokenizer.Tokenize(text)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(tokens))
	for i, tok := range tokens {
		entries[i] = Entry{Token: tok, Pair: result.From(parse.SplitKeyValue(tok))}
	}

	return entries, nil
}

// Parse decodes data into target. See the package documentation for the
// supported targets and the meaning of path.
func (p *Parser) Parse(data []byte, target any, path string) error {
	dst, err := p.sinkFor(target)
	if err != nil {
		return err
	}

	text := string(data)

	entries, err := p.Entries(text)
	if err != nil {
		return err
	}

	prefix := p.prefix(path)

	var errs error

	for _, entry := range entries {
		err := p.apply(entry, dst, prefix)
		if err == nil {
			continue
		}

		lineErr := newLineError(text, err)

		switch p.policy {
		case Skip:
			p.log().Warn("skipping entry",
				slog.String("position", lineErr.Position.String()),
				slog.String("token", entry.Token.Text()),
				slog.String("error", err.Error()))
		case Collect:
			errs = multierr.Append(errs, lineErr)
		case Abort:
			return lineErr
		default:
			return lineErr
		}
	}

	return errs
}

// Properties parses data into a new store.
func (p *Parser) Properties(data []byte, path string) (*properties.Properties, error) {
	props := properties.New()

	err := p.Parse(data, props, path)
	if err != nil {
		return props, err
	}

	return props, nil
}

func (p *Parser) apply(entry Entry, dst sink, prefix string) error {
	pair, err := entry.Pair.Unpack()
	if err != nil {
		return err
	}

	key := p.normalize(pair.Key.Text())

	if prefix != "" {
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		key = strings.TrimPrefix(key, prefix)
	}

	assign, ok := dst.lookup(key)
	if !ok {
		return parse.NewError(parse.KeyNotFound, pair.Key.Offset(), pair.Key.Text(), nil)
	}

	if dst.seen(key) {
		p.log().Debug("duplicate key, last value wins", slog.String("key", key))
	}

	return assign(pair.Value)
}

// prefix converts a colon path to the dotted key prefix, e.g. "db:primary" -> "db.primary.".
func (p *Parser) prefix(path string) string {
	if path == "" {
		return ""
	}

	parts := strings.Split(path, pathSeparator)

	return p.normalize(strings.Join(parts, ".")) + "."
}

func (p *Parser) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}

	return slog.Default()
}

// LineError places an entry error in its source.
type LineError struct {
	Position parse.Position
	Err      error
}

func newLineError(text string, err error) *LineError {
	offset := 0

	var perr *parse.Error
	if errors.As(err, &perr) && perr.Offset >= 0 {
		offset = perr.Offset
	}

	return &LineError{Position: parse.Locate(text, offset), Err: err}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Position, e.Err)
}

// Unwrap returns the entry error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Errors splits an error returned by Parse into its entry errors. The
// aggregate is found even when err wraps it, e.g. after config.Load.
func Errors(err error) []error {
	var group interface{ Errors() []error }
	if errors.As(err, &group) {
		return group.Errors()
	}

	return multierr.Errors(err)
}
