// Package hash fingerprints decoded inputs.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest computes the xxHash64 of data.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestReader computes the xxHash64 of everything read from r.
//
// Returns:
//   - uint64: Digest of the consumed bytes
//   - int64: Number of bytes consumed
//   - error: Read error from r
func DigestReader(r io.Reader) (uint64, int64, error) {
	d := xxhash.New()
	n, err := io.Copy(d, r)
	if err != nil {
		return 0, n, err
	}

	return d.Sum64(), n, nil
}
