// Package file provides the file-based DataFetcher and ReadBuffer.
//
// The file is read at construction time and cached, meaning subsequent calls
// to Fetch() return the same bytes without touching the filesystem again.
// Bytes are copied as they are: no decoding, no newline translation.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/etc/app/settings.ini")()
//	if err != nil {
//	    // parse.ErrFileNotOpened or parse.ErrFileIO
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - A missing, unreadable or directory path is a parse.Error of kind FileNotOpened
//   - A failure after the file was opened is a parse.Error of kind FileIoError
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory paths
package file
