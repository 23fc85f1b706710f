package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MboxSource splits an mboxo/mboxrd stream into raw messages. Each message
// is preceded by a Unix "From " separator line; body lines escaped as
// ">From " (one or more '>') get a single leading '>' removed, per mboxrd.
type MboxSource struct {
	path            string
	br              *bufio.Reader
	maxMessageBytes int

	seq     int
	started bool
	eof     bool
}

// NewMboxSource wraps r, which must contain mbox data. path is used to
// label rows as "path#seq". maxMessageBytes <= 0 disables the size ceiling.
func NewMboxSource(path string, r io.Reader, maxMessageBytes int) *MboxSource {
	return &MboxSource{
		path:            path,
		br:              bufio.NewReader(r),
		maxMessageBytes: maxMessageBytes,
	}
}

// Next returns the next message, io.EOF at end of stream, or ErrRowTooLarge
// for a message over the size ceiling (the stream stays positioned at the
// following message).
func (s *MboxSource) Next() (*Row, error) {
	if s.eof {
		return nil, io.EOF
	}

	// Skip ahead to the first separator on the very first call.
	if !s.started {
		for {
			line, err := s.br.ReadString('\n')
			if isFromSeparator(line) {
				s.started = true
				break
			}
			if err != nil {
				s.eof = true
				if err == io.EOF {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("read mbox: %w", err)
			}
		}
	}

	var raw strings.Builder
	tooLarge := false

	for {
		line, err := s.br.ReadString('\n')
		if isFromSeparator(line) {
			break
		}
		if line != "" && !tooLarge {
			unescaped := unescapeFromLine(line)
			if s.maxMessageBytes > 0 && raw.Len()+len(unescaped) > s.maxMessageBytes {
				tooLarge = true
			} else {
				raw.WriteString(unescaped)
			}
		}
		if err != nil {
			s.eof = true
			if err != io.EOF {
				return nil, fmt.Errorf("read mbox: %w", err)
			}
			break
		}
	}

	s.seq++
	if tooLarge {
		return nil, fmt.Errorf("%w: message %d over %d bytes", ErrRowTooLarge, s.seq, s.maxMessageBytes)
	}
	return &Row{
		Path:       fmt.Sprintf("%s#%d", s.path, s.seq),
		RawMessage: raw.String(),
	}, nil
}

// isFromSeparator reports whether line looks like an mbox "From " separator:
// "From " followed by a sender and a date, not a bare body line.
func isFromSeparator(line string) bool {
	if !strings.HasPrefix(line, "From ") {
		return false
	}
	return len(strings.Fields(line)) >= 3
}

// unescapeFromLine removes one leading '>' from lines matching ^>+From ,
// undoing mboxrd quoting.
func unescapeFromLine(line string) string {
	trimmed := strings.TrimLeft(line, ">")
	if len(trimmed) < len(line) && strings.HasPrefix(trimmed, "From ") {
		return line[1:]
	}
	return line
}
