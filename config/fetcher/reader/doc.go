// Package reader provides a DataFetcher over any io.Reader, typically
// standard input.
//
// The reader is drained at construction time and the bytes are cached. A read
// failure is reported as a parse.Error of kind FileIoError.
package reader
