// Package rasx extracts the measured profile from Rigaku .rasx containers.
//
// A .rasx file is a zip archive; the profile lives in a whitespace-delimited
// two-column text entry, conventionally Data0/Profile0.txt.
package rasx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/internal/scan"
	"github.com/arloliu/geddes/pattern"
)

const (
	// ProfileEntry is the preferred profile entry name.
	ProfileEntry = "Data0/Profile0.txt"
	// ProfilePattern describes the fallback entry names, for error messages.
	ProfilePattern = "Profile*.txt"
)

// SelectEntry picks the profile entry among archive entry names.
//
// The exact name Data0/Profile0.txt wins; otherwise the first name that contains
// "Profile" and ends with ".txt" is used.
//
// Returns:
//   - string: Selected entry name
//   - error: errs.ErrEntryNotFound naming ProfilePattern if nothing matches
func SelectEntry(names []string) (string, error) {
	for _, name := range names {
		if name == ProfileEntry {
			return name, nil
		}
	}
	for _, name := range names {
		if strings.Contains(name, "Profile") && strings.HasSuffix(name, ".txt") {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: %s", errs.ErrEntryNotFound, ProfilePattern)
}

// Decode opens the zip container in r and decodes its profile entry.
//
// Only the selected entry is read. The pattern never has an uncertainty axis.
//
// Parameters:
//   - r: Random-access source of the archive
//   - size: Archive size in bytes
//
// Returns:
//   - pattern.Pattern: Decoded profile
//   - error: errs.ErrMalformedArchive, errs.ErrEntryNotFound or errs.ErrIO
func Decode(r io.ReaderAt, size int64) (pattern.Pattern, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("%w: %w", errs.ErrMalformedArchive, err)
	}

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}

	name, err := SelectEntry(names)
	if err != nil {
		return pattern.Pattern{}, err
	}

	var file *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			file = f
			break
		}
	}

	entry, err := file.Open()
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("%w: %s: %w", errs.ErrMalformedArchive, name, err)
	}
	defer entry.Close()

	return decodeProfile(entry)
}

// decodeProfile reads two whitespace-delimited columns; blank lines and rows whose
// first two fields are not numbers are skipped.
func decodeProfile(r io.Reader) (pattern.Pattern, error) {
	var x, y []float64

	s := scan.NewScanner(r)
	for s.Scan() {
		fields := scan.Fields(s.Text())
		if len(fields) < 2 {
			continue
		}
		vx, okX := scan.ParseFloat(fields[0])
		vy, okY := scan.ParseFloat(fields[1])
		if okX && okY {
			x = append(x, vx)
			y = append(y, vy)
		}
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, zip.ErrChecksum) {
			return pattern.Pattern{}, fmt.Errorf("%w: %w", errs.ErrMalformedArchive, err)
		}

		return pattern.Pattern{}, errs.IO(err)
	}

	return pattern.Pattern{X: x, Y: y}, nil
}
