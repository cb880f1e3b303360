// Package xrdml decodes Panalytical .xrdml documents.
//
// The decoder walks XML tokens forward only and never materializes a document
// tree. It keeps the start and end positions of the 2Theta axis and the first
// intensities list, and derives an evenly spaced scan axis from them.
package xrdml

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/internal/scan"
	"github.com/arloliu/geddes/pattern"
)

const (
	elemPositions   = "positions"
	elemStart       = "startPosition"
	elemEnd         = "endPosition"
	elemIntensities = "intensities"
	attrAxis        = "axis"
	axis2Theta      = "2Theta"
)

// state is the position of the walker relative to the elements it cares about.
type state uint8

const (
	stateOutside     state = iota // outside any element of interest
	stateAxisBlock                // inside <positions axis="2Theta">
	stateStart                    // inside <startPosition> of a 2Theta block
	stateEnd                      // inside <endPosition> of a 2Theta block
	stateIntensities              // inside <intensities>
)

// walker accumulates the values found while walking the token stream.
type walker struct {
	state  state
	resume state // state to restore when </intensities> closes
	text   strings.Builder

	start, end       float64
	hasStart, hasEnd bool
	intensities      []float64
}

// Decode reads an XRDML document from r.
//
// Parameters:
//   - r: XML stream
//
// Returns:
//   - pattern.Pattern: Intensities over an axis spanning [start, end]; no uncertainty axis
//   - error: errs.ErrParse naming the missing or invalid piece, or errs.ErrIO
func Decode(r io.Reader) (pattern.Pattern, error) {
	src := &recordingReader{r: transform.NewReader(r, unicode.BOMOverride(transform.Nop))}
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charsetReader

	w := &walker{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if src.err != nil {
				return pattern.Pattern{}, errs.IO(src.err)
			}

			return pattern.Pattern{}, errs.Parsef("XRDML parse error: %v", err)
		}

		done, err := w.handle(tok)
		if err != nil {
			return pattern.Pattern{}, err
		}
		if done {
			break
		}
	}

	return w.pattern()
}

// handle applies one token. It reports done once a complete profile is collected.
func (w *walker) handle(tok xml.Token) (bool, error) {
	switch t := tok.(type) {
	case xml.StartElement:
		w.enter(t)
	case xml.CharData:
		if w.state == stateStart || w.state == stateEnd || w.state == stateIntensities {
			w.text.Write(t)
		}
	case xml.EndElement:
		return w.leave(t.Name.Local)
	}

	return false, nil
}

func (w *walker) enter(t xml.StartElement) {
	switch t.Name.Local {
	case elemPositions:
		w.state = stateOutside
		for _, attr := range t.Attr {
			if attr.Name.Local == attrAxis && attr.Value == axis2Theta {
				w.state = stateAxisBlock
			}
		}
	case elemStart:
		if w.state == stateAxisBlock {
			w.state = stateStart
			w.text.Reset()
		}
	case elemEnd:
		if w.state == stateAxisBlock {
			w.state = stateEnd
			w.text.Reset()
		}
	case elemIntensities:
		if w.state != stateIntensities {
			w.resume = w.state
		}
		w.state = stateIntensities
		w.text.Reset()
	}
}

func (w *walker) leave(name string) (bool, error) {
	switch {
	case name == elemPositions:
		w.state = stateOutside
	case name == elemStart && w.state == stateStart:
		w.state = stateAxisBlock
		if text := strings.TrimSpace(w.text.String()); text != "" {
			v, ok := scan.ParseFloat(text)
			if !ok {
				return false, errs.Parsef("XRDML invalid 2Theta start position")
			}
			w.start, w.hasStart = v, true
		}
	case name == elemEnd && w.state == stateEnd:
		w.state = stateAxisBlock
		if text := strings.TrimSpace(w.text.String()); text != "" {
			v, ok := scan.ParseFloat(text)
			if !ok {
				return false, errs.Parsef("XRDML invalid 2Theta end position")
			}
			w.end, w.hasEnd = v, true
		}
	case name == elemIntensities && w.state == stateIntensities:
		w.state = w.resume
		w.intensities = scan.AppendFloats(w.intensities, w.text.String())
		w.text.Reset()

		return len(w.intensities) > 0 && w.hasStart && w.hasEnd, nil
	}

	return false, nil
}

func (w *walker) pattern() (pattern.Pattern, error) {
	if !w.hasStart {
		return pattern.Pattern{}, errs.Parsef("XRDML missing 2Theta start position")
	}
	if !w.hasEnd {
		return pattern.Pattern{}, errs.Parsef("XRDML missing 2Theta end position")
	}
	if len(w.intensities) == 0 {
		return pattern.Pattern{}, errs.Parsef("XRDML intensities not found")
	}

	return pattern.Pattern{
		X: pattern.Span(w.start, w.end, len(w.intensities)),
		Y: w.intensities,
	}, nil
}

// recordingReader remembers the first read error so that I/O failures can be told
// apart from malformed XML.
type recordingReader struct {
	r   io.Reader
	err error
}

func (r *recordingReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && r.err == nil {
		r.err = err
	}

	return n, err
}
