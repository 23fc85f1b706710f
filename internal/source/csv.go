package source

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVSource reads a corpus CSV with a header row naming a "file" column
// (source path) and a "message" column (raw RFC 5322 text).
type CSVSource struct {
	r               *csv.Reader
	fileCol         int
	messageCol      int
	maxMessageBytes int
}

// NewCSVSource wraps r, reading and validating the header row immediately.
// Rows whose message field exceeds maxMessageBytes surface as
// ErrRowTooLarge from Next; maxMessageBytes <= 0 disables the ceiling.
func NewCSVSource(r io.Reader, maxMessageBytes int) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	src := &CSVSource{r: cr, fileCol: -1, messageCol: -1, maxMessageBytes: maxMessageBytes}
	for i, name := range header {
		switch name {
		case "file":
			src.fileCol = i
		case "message":
			src.messageCol = i
		}
	}
	if src.fileCol < 0 || src.messageCol < 0 {
		return nil, fmt.Errorf("csv header must contain %q and %q columns, got %v", "file", "message", header)
	}
	return src, nil
}

// Next returns the next row, io.EOF at end of input, or ErrRowTooLarge for
// an oversized message field.
func (s *CSVSource) Next() (*Row, error) {
	record, err := s.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}

	raw := record[s.messageCol]
	if s.maxMessageBytes > 0 && len(raw) > s.maxMessageBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrRowTooLarge, len(raw), s.maxMessageBytes)
	}

	return &Row{Path: record[s.fileCol], RawMessage: raw}, nil
}
