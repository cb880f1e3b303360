package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/geddes/format"
)

// GzipDecompressor reads gzip members, concatenating multi-member streams.
type GzipDecompressor struct{}

var _ Decompressor = (*GzipDecompressor)(nil)

// NewGzipDecompressor creates a new gzip decompressor.
func NewGzipDecompressor() GzipDecompressor {
	return GzipDecompressor{}
}

// Type returns format.CompressionGzip.
func (GzipDecompressor) Type() format.CompressionType {
	return format.CompressionGzip
}

// NewReader reads the gzip header of r and returns a reader over the members.
func (GzipDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return zr, nil
}
