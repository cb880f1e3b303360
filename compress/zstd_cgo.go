//go:build cgo && gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a gozstd stream reader over r. Close releases its C resources.
func (ZstdDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{Reader: gozstd.NewReader(r)}, nil
}

type gozstdReader struct {
	*gozstd.Reader
}

func (r *gozstdReader) Close() error {
	if r.Reader != nil {
		r.Release()
		r.Reader = nil
	}

	return nil
}
