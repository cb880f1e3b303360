package compress

import (
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/geddes/format"
)

// lz4ReaderPool pools frame readers; each keeps its block buffers across Reset.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Decompressor reads LZ4 frame streams.
type LZ4Decompressor struct{}

var _ Decompressor = (*LZ4Decompressor)(nil)

// NewLZ4Decompressor creates a new LZ4 frame decompressor.
//
// Returns:
//   - LZ4Decompressor: New LZ4 decompressor instance
func NewLZ4Decompressor() LZ4Decompressor {
	return LZ4Decompressor{}
}

// Type returns format.CompressionLZ4.
func (LZ4Decompressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// NewReader returns a pooled frame reader over r.
//
// Frame headers are validated lazily, so a corrupt stream fails on the first Read.
func (LZ4Decompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	zr.Reset(r)

	return &lz4Reader{Reader: zr}, nil
}

type lz4Reader struct {
	*lz4.Reader
}

func (r *lz4Reader) Close() error {
	if r.Reader == nil {
		return nil
	}
	r.Reset(nil)
	lz4ReaderPool.Put(r.Reader)
	r.Reader = nil

	return nil
}
