package reader

import (
	"bytes"
	"io"

	"github.com/0xalexb/kvline/parse"
)

// Fetcher implements config.DataFetcher for data drained from an io.Reader.
type Fetcher struct {
	name string
	data []byte
}

// NewFetcher returns a constructor that drains r. The name is used in error
// messages, e.g. "<stdin>".
func NewFetcher(r io.Reader, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		data, err := ReadAll(r, name)
		if err != nil {
			return nil, err
		}

		return &Fetcher{name: name, data: data}, nil
	}
}

// ReadAll reads r to the end, byte for byte. Any read error is returned as a
// FileIoError.
func ReadAll(r io.Reader, name string) ([]byte, error) {
	var buf bytes.Buffer

	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, parse.NewError(parse.FileIoError, -1, name, err)
	}

	return buf.Bytes(), nil
}

// Name returns the source name.
func (f *Fetcher) Name() string {
	return f.name
}

// Fetch returns a copy of the drained data.
func (f *Fetcher) Fetch() ([]byte, error) {
	return bytes.Clone(f.data), nil
}
