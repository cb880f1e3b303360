package scan

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Fields splits a line on runs of whitespace.
func Fields(line string) []string {
	return strings.Fields(line)
}

// CSVFields splits a line on commas or whitespace and drops empty tokens.
func CSVFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// IsComment reports whether a trimmed line is blank or starts with a comment marker.
func IsComment(line string) bool {
	return line == "" || line[0] == '#' || line[0] == '!'
}

// ParseFloat parses tok as a finite float64.
// NaN and infinities are rejected like unparseable input.
func ParseFloat(tok string) (float64, bool) {
	v, ok := ParseNumber(tok)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// ParseNumber parses tok as a decimal float64, keeping NaN and infinities.
//
// "NaN", "inf" and "infinity" are accepted in any case, and out-of-range
// exponents saturate to an infinity. Hexadecimal floats are rejected.
func ParseNumber(tok string) (float64, bool) {
	if hasHexPrefix(tok) {
		return 0, false
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return v, true
}

func hasHexPrefix(tok string) bool {
	if tok != "" && (tok[0] == '+' || tok[0] == '-') {
		tok = tok[1:]
	}

	return len(tok) >= 2 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X')
}

// AppendFloats appends every whitespace-separated token of line that parses as a
// number to dst, NaN and infinities included. Tokens that do not parse are skipped.
func AppendFloats(dst []float64, line string) []float64 {
	for _, tok := range strings.Fields(line) {
		if v, ok := ParseNumber(tok); ok {
			dst = append(dst, v)
		}
	}

	return dst
}
