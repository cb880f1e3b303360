package compress

import (
	"io"
	"sync"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/geddes/format"
)

var s2ReaderPool = sync.Pool{
	New: func() any {
		return s2.NewReader(nil)
	},
}

// S2Decompressor reads S2 streams, including Snappy framed streams.
type S2Decompressor struct{}

var _ Decompressor = (*S2Decompressor)(nil)

// NewS2Decompressor creates a new S2 stream decompressor.
func NewS2Decompressor() S2Decompressor {
	return S2Decompressor{}
}

// Type returns format.CompressionS2.
func (S2Decompressor) Type() format.CompressionType {
	return format.CompressionS2
}

// NewReader returns a pooled stream reader over r.
func (S2Decompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, _ := s2ReaderPool.Get().(*s2.Reader)
	zr.Reset(r)

	return &s2Reader{Reader: zr}, nil
}

type s2Reader struct {
	*s2.Reader
}

func (r *s2Reader) Close() error {
	if r.Reader == nil {
		return nil
	}
	r.Reset(nil)
	s2ReaderPool.Put(r.Reader)
	r.Reader = nil

	return nil
}
