package compress

import (
	"io"

	"github.com/arloliu/geddes/format"
)

// NoOpDecompressor passes unwrapped input through unchanged.
type NoOpDecompressor struct{}

var _ Decompressor = (*NoOpDecompressor)(nil)

// NewNoOpDecompressor creates a new pass-through decompressor.
func NewNoOpDecompressor() NoOpDecompressor {
	return NoOpDecompressor{}
}

// Type returns format.CompressionNone.
func (NoOpDecompressor) Type() format.CompressionType {
	return format.CompressionNone
}

// NewReader returns r with a no-op Close.
func (NoOpDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}
