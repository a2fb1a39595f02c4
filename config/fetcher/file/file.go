package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/0xalexb/kvline/config/fetcher/reader"
	"github.com/0xalexb/kvline/parse"
)

// ErrPathIsDirectory is the cause of a FileNotOpened error for a directory path.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a file read once at construction.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that reads fpath and caches its
// bytes. This pattern is Fx-friendly, allowing the DI container to control
// when the file is read.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		data, err := read(cleanPath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// ReadBuffer reads the whole file at fpath into a string.
//
// A path that cannot be opened (missing, not permitted, a directory) yields a
// parse.Error of kind FileNotOpened; a failure while reading an opened file
// yields FileIoError.
func ReadBuffer(fpath string) (string, error) {
	data, err := read(filepath.Clean(fpath))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func read(cleanPath string) ([]byte, error) {
	file, err := os.Open(cleanPath) // #nosec G304 -- path is cleaned, reading arbitrary files is the purpose
	if err != nil {
		return nil, parse.NewError(parse.FileNotOpened, -1, cleanPath, err)
	}

	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, parse.NewError(parse.FileNotOpened, -1, cleanPath, err)
	}

	if stat.IsDir() {
		return nil, parse.NewError(parse.FileNotOpened, -1, cleanPath, ErrPathIsDirectory)
	}

	return reader.ReadAll(file, cleanPath)
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	return bytes.Clone(f.data), nil
}
