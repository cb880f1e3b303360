package scan

import (
	"bufio"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Scanner reads an input line by line.
//
// A leading UTF-8 byte order mark is dropped and UTF-16 input with a byte order
// mark is transcoded to UTF-8; any other input passes through untouched, so binary
// content can be scanned without corruption. Lines are split on '\n' with a trailing
// '\r' removed. Unlike bufio.Scanner there is no maximum line length.
type Scanner struct {
	r    *bufio.Reader
	line []byte
	err  error
	done bool
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	tr := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	return &Scanner{r: bufio.NewReaderSize(tr, 64*1024)}
}

// Scan advances to the next line. It returns false at end of input or on a read error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	s.line = s.line[:0]
	for {
		chunk, err := s.r.ReadSlice('\n')
		s.line = append(s.line, chunk...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
			return false
		}
		if len(s.line) == 0 {
			return false
		}

		break
	}

	n := len(s.line)
	if n > 0 && s.line[n-1] == '\n' {
		n--
	}
	if n > 0 && s.line[n-1] == '\r' {
		n--
	}
	s.line = s.line[:n]

	return true
}

// Text returns the current line without its terminator.
func (s *Scanner) Text() string {
	return string(s.line)
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.err
}
