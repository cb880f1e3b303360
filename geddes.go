// Package geddes reads powder diffraction patterns from instrument files.
//
// The decoder is chosen from the file name, never from the content:
//
//   - .xy, .xye: whitespace-delimited columns (x, y and optional uncertainty)
//   - .csv: comma- or whitespace-delimited columns
//   - .rasx: Rigaku zip containers holding a Profile*.txt entry
//   - .xrdml: Panalytical XML documents
//   - .raw: GSAS text with a BANK header, or Bruker RAW4 binaries
//
// Any of these may be wrapped in .gz, .zst, .lz4 or .s2 compression, e.g.
// "scan.xy.zst". Extensions are matched case-insensitively.
//
// # Basic Usage
//
//	p, err := geddes.Read("sample.xrdml")
//	if err != nil {
//	    return err
//	}
//	for i := range p.X {
//	    fmt.Printf("%f %f\n", p.X[i], p.Y[i])
//	}
//
// Decoding bytes that are already in memory only needs a file name to select
// the decoder:
//
//	p, err := geddes.ReadBytes(data, "upload.raw")
//
// # Raw Files
//
// The .raw extension is shared by two unrelated formats. The GSAS decoder runs
// first; when the input has no BANK header the Bruker reconstructor is tried.
// Only a missing header triggers the fallback; other failures are returned as
// is. WithRawOrder reverses the order.
//
// # Errors
//
// Every error wraps one of the sentinels in package errs, so callers classify
// failures with errors.Is. Results are all-or-nothing: a Pattern is returned
// only when every axis was decoded.
package geddes

import (
	"io"
	"os"

	"github.com/arloliu/geddes/bruker"
	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/format"
	"github.com/arloliu/geddes/gsas"
	"github.com/arloliu/geddes/pattern"
)

// Pattern is a decoded diffraction pattern.
type Pattern = pattern.Pattern

// Result is a decoded pattern together with how it was decoded.
type Result struct {
	Pattern

	Format      format.Kind            // format selected from the file name
	Decoder     format.Decoder         // decoder that produced the pattern
	Compression format.CompressionType // outer compression wrapper
	Digest      uint64                 // xxHash64 of the decompressed input
	Size        int64                  // decompressed input size in bytes

	// Reconstruction is the inferred binary layout when Decoder is format.DecoderBruker.
	Reconstruction *bruker.Reconstruction

	// Bank is the header of the decoded bank when Decoder is format.DecoderGSAS.
	Bank *gsas.Bank
}

// Read decodes the pattern stored in the file at path.
func Read(path string, opts ...Option) (Pattern, error) {
	res, err := DecodeFile(path, opts...)
	if err != nil {
		return Pattern{}, err
	}

	return res.Pattern, nil
}

// ReadBytes decodes a pattern from data.
//
// The filename only selects the decoder; it need not exist. The returned
// pattern does not reference data.
func ReadBytes(data []byte, filename string, opts ...Option) (Pattern, error) {
	res, err := DecodeBytes(data, filename, opts...)
	if err != nil {
		return Pattern{}, err
	}

	return res.Pattern, nil
}

// DecodeFile decodes the file at path and reports how it was decoded.
//
// The format is resolved from path before the file is opened, so unsupported
// names fail with errs.ErrUnknownFormat without touching the file system.
//
// Parameters:
//   - path: File to decode; its extension selects the decoder
//   - opts: Read options
//
// Returns:
//   - Result: Decoded pattern and provenance
//   - error: Error wrapping one of the errs sentinels
func DecodeFile(path string, opts ...Option) (Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Result{}, err
	}
	kind, compression, err := format.FromFilename(path)
	if err != nil {
		return Result{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, errs.IO(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, errs.IO(err)
	}

	return decode(input{r: f, size: info.Size()}, path, kind, compression, cfg)
}

// DecodeBytes decodes data and reports how it was decoded.
func DecodeBytes(data []byte, filename string, opts ...Option) (Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Result{}, err
	}
	kind, compression, err := format.FromFilename(filename)
	if err != nil {
		return Result{}, err
	}

	return decode(bytesInput(data), filename, kind, compression, cfg)
}

// Decode decodes size bytes read from r.
//
// Archive formats read r at random offsets; text formats stream it; .raw and
// compressed inputs are read into memory in full.
func Decode(r io.ReaderAt, size int64, filename string, opts ...Option) (Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Result{}, err
	}
	kind, compression, err := format.FromFilename(filename)
	if err != nil {
		return Result{}, err
	}

	return decode(input{r: r, size: size}, filename, kind, compression, cfg)
}
