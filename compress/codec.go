package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/format"
)

// Decompressor opens streaming readers over compressed input.
type Decompressor interface {
	// Type returns the compression algorithm handled by the decompressor.
	Type() format.CompressionType

	// NewReader returns a reader producing the decompressed contents of r.
	//
	// The caller must Close the returned reader; Close does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinDecompressors = map[format.CompressionType]Decompressor{
	format.CompressionNone: NewNoOpDecompressor(),
	format.CompressionGzip: NewGzipDecompressor(),
	format.CompressionZstd: NewZstdDecompressor(),
	format.CompressionS2:   NewS2Decompressor(),
	format.CompressionLZ4:  NewLZ4Decompressor(),
}

// GetDecompressor retrieves the built-in Decompressor for the specified compression type.
//
// Parameters:
//   - compressionType: Compression wrapper resolved from the file name
//
// Returns:
//   - Decompressor: Shared decompressor for the type
//   - error: errs.ErrUnknownFormat for an unsupported compression type
func GetDecompressor(compressionType format.CompressionType) (Decompressor, error) {
	if d, ok := builtinDecompressors[compressionType]; ok {
		return d, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrUnknownFormat, compressionType)
}

// Copy decompresses src into dst.
//
// At most limit decompressed bytes are accepted; a limit of zero or less
// disables the check.
//
// Parameters:
//   - dst: Destination of the decompressed bytes
//   - d: Decompressor for the wrapper
//   - src: Compressed stream
//   - limit: Maximum decompressed size in bytes
//
// Returns:
//   - int64: Number of decompressed bytes written
//   - error: errs.ErrInputTooLarge, errs.ErrDecompress or errs.ErrIO
func Copy(dst io.Writer, d Decompressor, src io.Reader, limit int64) (int64, error) {
	source := &sourceReader{r: src}

	zr, err := d.NewReader(source)
	if err != nil {
		return 0, source.wrap(d, err)
	}
	defer zr.Close()

	var r io.Reader = zr
	if limit > 0 {
		r = io.LimitReader(zr, limit+1)
	}

	n, err := io.Copy(dst, r)
	if err != nil {
		return n, source.wrap(d, err)
	}
	if limit > 0 && n > limit {
		return n, fmt.Errorf("%w: %s payload exceeds %d bytes", errs.ErrInputTooLarge, d.Type(), limit)
	}

	return n, nil
}

// sourceReader remembers the first error of the compressed source so read
// failures can be told apart from corrupt streams.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}

	return n, err
}

func (s *sourceReader) wrap(d Decompressor, err error) error {
	if s.err != nil {
		return errs.IO(s.err)
	}

	return fmt.Errorf("%w: %s: %w", errs.ErrDecompress, d.Type(), err)
}
