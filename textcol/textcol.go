// Package textcol decodes delimited two- and three-column text patterns
// (.xy, .xye and .csv files).
//
// Blank lines and lines starting with '#' or '!' are skipped. A line yields a
// point only when its first two fields parse as finite floats; any other line is
// dropped silently. A third field becomes the uncertainty of that point, and the
// uncertainty axis is attached only when every accepted line supplied one.
package textcol

import (
	"io"
	"strings"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/internal/scan"
	"github.com/arloliu/geddes/pattern"
)

// Variant selects how lines are split into fields.
type Variant uint8

const (
	// VariantXY splits on runs of whitespace.
	VariantXY Variant = iota
	// VariantCSV splits on commas or whitespace, discarding empty fields.
	VariantCSV
)

func (v Variant) String() string {
	switch v {
	case VariantXY:
		return "XY"
	case VariantCSV:
		return "CSV"
	default:
		return "Unknown"
	}
}

func (v Variant) split(line string) []string {
	if v == VariantCSV {
		return scan.CSVFields(line)
	}

	return scan.Fields(line)
}

// DecodeXY decodes a whitespace-delimited .xy/.xye stream.
func DecodeXY(r io.Reader) (pattern.Pattern, error) {
	return Decode(r, VariantXY)
}

// DecodeCSV decodes a comma- or whitespace-delimited .csv stream.
func DecodeCSV(r io.Reader) (pattern.Pattern, error) {
	return Decode(r, VariantCSV)
}

// Decode reads x, y and optional e columns from r.
//
// Parameters:
//   - r: Text stream
//   - variant: Field splitting rule
//
// Returns:
//   - pattern.Pattern: Decoded pattern, possibly empty
//   - error: errs.ErrIO if reading r fails
func Decode(r io.Reader, variant Variant) (pattern.Pattern, error) {
	var x, y, e []float64

	s := scan.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if scan.IsComment(line) {
			continue
		}

		fields := variant.split(line)
		if len(fields) < 2 {
			continue
		}
		vx, okX := scan.ParseFloat(fields[0])
		vy, okY := scan.ParseFloat(fields[1])
		if !okX || !okY {
			continue
		}

		x = append(x, vx)
		y = append(y, vy)
		if len(fields) >= 3 {
			if ve, ok := scan.ParseFloat(fields[2]); ok {
				e = append(e, ve)
			}
		}
	}
	if err := s.Err(); err != nil {
		return pattern.Pattern{}, errs.IO(err)
	}

	p := pattern.Pattern{X: x, Y: y}
	if len(e) > 0 && len(e) == len(x) {
		p.E = e
	}

	return p, nil
}
