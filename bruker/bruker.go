package bruker

import (
	"bytes"
	"fmt"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/pattern"
)

// MinSize is the smallest buffer accepted as a Bruker RAW file.
const MinSize = 32

var magic = []byte("RAW")

// Reconstruction is the layout and scan metadata chosen for a buffer.
type Reconstruction struct {
	Layout   Layout
	Metadata Metadata
}

func (r Reconstruction) String() string {
	return fmt.Sprintf("%s layout: %d points at offset %d (stride %d, value offset %d), scan %g..%g step %g (score %g, anchor %d)",
		r.Layout.Kind, r.Layout.Count, r.Layout.DataOffset, r.Layout.Stride, r.Layout.ValueOffset,
		r.Metadata.Start, r.Metadata.End(r.Layout.Count), r.Metadata.Step, r.Metadata.Score, r.Metadata.Anchor)
}

// HasHeader reports whether data starts like a Bruker RAW file.
func HasHeader(data []byte) bool {
	return len(data) >= MinSize && bytes.HasPrefix(data, magic)
}

// Reconstruct infers the intensity layout and scan metadata of a Bruker RAW buffer.
//
// Every plausible layout hypothesis is paired with the metadata candidates found
// next to its count anchors. Candidates are evaluated interleaved layout first,
// then plain; the strictly highest score wins.
//
// Parameters:
//   - data: Whole file contents; not modified or retained
//
// Returns:
//   - Reconstruction: Chosen layout and metadata
//   - error: errs.ErrHeaderNotFound when data is not a RAW buffer, errs.ErrParse
//     when no plausible data block or no valid metadata exists
func Reconstruct(data []byte) (Reconstruction, error) {
	if !HasHeader(data) {
		return Reconstruction{}, errs.HeaderNotFoundf("unsupported Bruker RAW header")
	}

	layouts := Layouts(data)
	if len(layouts) == 0 {
		return Reconstruction{}, errs.Parsef("failed to locate Bruker RAW data block")
	}

	var (
		best  Reconstruction
		found bool
	)
	for _, l := range layouts {
		m, ok := BestMetadata(MetadataCandidates(data, l.Count, Anchors(data, l.Count, l.DataOffset)))
		if !ok {
			continue
		}
		if !found || m.Score > best.Metadata.Score {
			best, found = Reconstruction{Layout: l, Metadata: m}, true
		}
	}
	if !found {
		return Reconstruction{}, errs.Parsef("Bruker RAW scan metadata not found")
	}

	return best, nil
}

// Pattern extracts the pattern described by r from data.
func (r Reconstruction) Pattern(data []byte) (pattern.Pattern, error) {
	if r.Layout.Count < 0 || r.Layout.End() > len(data) {
		return pattern.Pattern{}, errs.Parsef("Bruker RAW intensity data truncated")
	}

	buf := newBuffer(data)

	y := make([]float64, r.Layout.Count)
	for i := range y {
		v, ok := r.Layout.ValueAt(buf, i)
		if !ok {
			return pattern.Pattern{}, errs.Parsef("Bruker RAW intensity data truncated")
		}
		y[i] = float64(v)
	}

	return pattern.Pattern{
		X: pattern.Arithmetic(r.Metadata.Start, r.Metadata.Step, len(y)),
		Y: y,
	}, nil
}

// Decode reconstructs the pattern stored in a Bruker RAW buffer.
func Decode(data []byte) (pattern.Pattern, error) {
	r, err := Reconstruct(data)
	if err != nil {
		return pattern.Pattern{}, err
	}

	return r.Pattern(data)
}
