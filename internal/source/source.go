// Package source provides streaming readers for raw email corpora. Each
// source yields (sourcePath, rawMessage) rows one at a time so arbitrarily
// large inputs can be indexed with bounded memory.
package source

import "errors"

// ErrRowTooLarge marks a row whose raw message exceeds the configured size
// ceiling. The row has been consumed; callers may count it and continue
// with the next row.
var ErrRowTooLarge = errors.New("source row exceeds size limit")

// Row is one raw message with its origin.
type Row struct {
	// Path identifies where the message came from (a corpus-relative file
	// path for CSV inputs, "file#seq" for mbox inputs). Opaque to the rest
	// of the system.
	Path string

	// RawMessage is the message in RFC 5322 transfer syntax.
	RawMessage string
}

// Source yields rows until io.EOF. A return of ErrRowTooLarge (possibly
// wrapped) is non-fatal and leaves the source positioned at the next row.
type Source interface {
	Next() (*Row, error)
}
