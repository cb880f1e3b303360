// Package gsas decodes GSAS-style .raw text files.
//
// A GSAS file carries one or more banks, each introduced by a header line such as
//
//	BANK 1 4941 494 CONST 1600.0 1.7 0.0 0.0 STD
//
// where the sixth and seventh fields give the scan start and step in centidegrees.
// The lines after the header form a flat stream of intensities.
package gsas

import (
	"io"
	"strings"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/internal/scan"
	"github.com/arloliu/geddes/pattern"
)

const (
	bankPrefix = "BANK"
	// minBankFields is the number of fields a header needs to carry start and step.
	minBankFields = 7
	// centidegrees converts header angles to degrees.
	centidegrees = 100.0
)

// Bank is a parsed BANK header line.
type Bank struct {
	Fields  []string // all whitespace-separated fields, starting with "BANK"
	ID      string   // bank number
	Points  string   // declared number of points
	Records string   // declared number of records
	BinType string   // e.g. CONST
	Start   float64  // scan start in degrees
	Step    float64  // scan step in degrees
}

// ParseBank parses a header line.
//
// Lines that do not start with "BANK" or carry fewer than seven fields are not
// headers and yield ok=false. A header whose start or step field is not a number
// is an error.
//
// Returns:
//   - Bank: Parsed header, angles converted to degrees
//   - bool: Whether line is a usable header
//   - error: errs.ErrParse for an invalid start or step
func ParseBank(line string) (Bank, bool, error) {
	if !strings.HasPrefix(line, bankPrefix) {
		return Bank{}, false, nil
	}

	fields := scan.Fields(line)
	if len(fields) < minBankFields {
		return Bank{}, false, nil
	}

	start, ok := scan.ParseFloat(fields[5])
	if !ok {
		return Bank{}, false, errs.Parsef("invalid start %q in BANK header", fields[5])
	}
	step, ok := scan.ParseFloat(fields[6])
	if !ok {
		return Bank{}, false, errs.Parsef("invalid step %q in BANK header", fields[6])
	}

	return Bank{
		Fields:  fields,
		ID:      fields[1],
		Points:  fields[2],
		Records: fields[3],
		BinType: fields[4],
		Start:   start / centidegrees,
		Step:    step / centidegrees,
	}, true, nil
}

// Decode reads the first bank of a GSAS stream.
//
// Returns:
//   - pattern.Pattern: Intensities of the first bank over start + i*step
//   - error: errs.ErrHeaderNotFound if no BANK header exists, errs.ErrParse, or errs.ErrIO
func Decode(r io.Reader) (pattern.Pattern, error) {
	_, p, err := DecodeBank(r)
	return p, err
}

// DecodeBank is Decode that also returns the header of the decoded bank.
func DecodeBank(r io.Reader) (Bank, pattern.Pattern, error) {
	s := scan.NewScanner(r)

	var (
		bank  Bank
		found bool
		err   error
	)
	for !found && s.Scan() {
		bank, found, err = ParseBank(s.Text())
		if err != nil {
			return Bank{}, pattern.Pattern{}, err
		}
	}
	if err := s.Err(); err != nil {
		return Bank{}, pattern.Pattern{}, errs.IO(err)
	}
	if !found {
		return Bank{}, pattern.Pattern{}, errs.HeaderNotFoundf("BANK header not found in RAW file")
	}

	var y []float64
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, bankPrefix) {
			break
		}
		y = scan.AppendFloats(y, line)
	}
	if err := s.Err(); err != nil {
		return Bank{}, pattern.Pattern{}, errs.IO(err)
	}

	return bank, pattern.Pattern{X: pattern.Arithmetic(bank.Start, bank.Step, len(y)), Y: y}, nil
}
