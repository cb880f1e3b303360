//go:build !cgo || !gozstd

package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation overhead.
// The klauspost/compress/zstd decoder runs without allocations after a warmup,
// so decoders are reset per stream instead of recreated.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // synchronous streaming, no goroutines per reader
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// NewReader returns a pooled decoder reading from r.
func (ZstdDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	if err := decoder.Reset(r); err != nil {
		zstdDecoderPool.Put(decoder)
		return nil, err
	}

	return &zstdReader{Decoder: decoder}, nil
}

type zstdReader struct {
	*zstd.Decoder
}

// Close detaches the decoder from its stream and returns it to the pool.
// The decoder itself stays open for reuse.
func (r *zstdReader) Close() error {
	if r.Decoder == nil {
		return nil
	}
	_ = r.Reset(nil)
	zstdDecoderPool.Put(r.Decoder)
	r.Decoder = nil

	return nil
}
