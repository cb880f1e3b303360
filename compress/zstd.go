package compress

import "github.com/arloliu/geddes/format"

// ZstdDecompressor reads Zstandard frame streams.
//
// The backend is selected at build time: the pooled pure-Go decoder by default,
// or gozstd when built with cgo and the gozstd tag.
type ZstdDecompressor struct{}

var _ Decompressor = (*ZstdDecompressor)(nil)

// NewZstdDecompressor creates a new Zstd decompressor.
//
// Returns:
//   - ZstdDecompressor: New Zstd decompressor instance
//
// Example:
//
//	d := NewZstdDecompressor()
//	n, err := Copy(dst, d, src, limit)
//	if err != nil {
//		return err
//	}
func NewZstdDecompressor() ZstdDecompressor {
	return ZstdDecompressor{}
}

// Type returns format.CompressionZstd.
func (ZstdDecompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
