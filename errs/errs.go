// Package errs defines the error kinds returned by geddes decoders.
//
// Every failure returned by the library wraps exactly one of the sentinels below,
// so callers classify errors with errors.Is and read the wrapped message for the
// details of which expectation failed:
//
//	p, err := geddes.Read("scan.raw")
//	if errors.Is(err, errs.ErrUnknownFormat) {
//	    // extension not supported
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when the filename has no supported extension.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrMalformedArchive is returned when a zip container cannot be opened.
	ErrMalformedArchive = errors.New("malformed archive")
	// ErrEntryNotFound is returned when the expected entry is missing from an archive.
	ErrEntryNotFound = errors.New("file not found in archive")
	// ErrParse is returned when a format-specific structural expectation is not met.
	ErrParse = errors.New("parse error")
	// ErrIO is returned when reading the underlying source fails.
	ErrIO = errors.New("io error")

	// ErrHeaderNotFound is a parse error signalling that the header convention of a
	// format is absent altogether. The raw dispatcher uses it to try the next decoder.
	ErrHeaderNotFound = fmt.Errorf("%w: header not found", ErrParse)

	// ErrInputTooLarge is returned when an input exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input too large")
	// ErrDecompress is returned when a compressed wrapper cannot be decoded.
	ErrDecompress = errors.New("decompression failed")
	// ErrInconsistentPattern is returned when decoded axes disagree in length.
	ErrInconsistentPattern = errors.New("inconsistent pattern")
	// ErrInvalidOption is returned when a read option carries an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)

// Parsef returns an ErrParse wrapping error with a formatted description.
func Parsef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// HeaderNotFoundf returns an ErrHeaderNotFound wrapping error with a formatted description.
func HeaderNotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrHeaderNotFound, fmt.Sprintf(format, args...))
}

// IO wraps a read failure as ErrIO. A nil err yields nil.
func IO(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}
