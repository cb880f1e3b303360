// Package compress unwraps compressed pattern files.
//
// A pattern file may be stored inside a single-stream compression wrapper,
// recognised by its outer suffix:
//
//   - .gz: gzip (format.CompressionGzip)
//   - .zst: Zstandard frames (format.CompressionZstd)
//   - .lz4: LZ4 frames (format.CompressionLZ4)
//   - .s2: S2/Snappy framed stream (format.CompressionS2)
//
// Each algorithm implements Decompressor, which opens a streaming reader over the
// compressed bytes:
//
//	d, err := compress.GetDecompressor(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	var out bytes.Buffer
//	n, err := compress.Copy(&out, d, bytes.NewReader(payload), 64<<20)
//
// Copy bounds the decompressed size, so a small wrapper cannot
// expand into an unbounded allocation. Exceeding the limit fails with
// errs.ErrInputTooLarge, a corrupt stream with errs.ErrDecompress and a failing
// source reader with errs.ErrIO.
//
// # Zstd backends
//
// The default Zstd backend is the pure-Go github.com/klauspost/compress/zstd
// decoder, pooled and reset per stream. Building with cgo and the gozstd tag
// switches to github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// # Thread Safety
//
// Decompressors are stateless values and safe for concurrent use. Readers
// returned by NewReader belong to one goroutine and must be closed to return
// pooled state.
package compress
