package bruker

import (
	"math"

	"github.com/arloliu/geddes/endian"
)

// Layout hypothesis limits.
const (
	MinCount = 10        // smallest count accepted from a plain count field
	MaxCount = 5_000_000 // largest count accepted from a plain count field

	// MinInterleavedRun is the shortest record run accepted as an interleaved block.
	MinInterleavedRun = 32
	// MaxStatusFlag is the largest status word an interleaved record may carry.
	MaxStatusFlag = 3
	// MaxMagnitude bounds the absolute value of any intensity.
	MaxMagnitude = 1e9

	plainStride       = 4
	interleavedStride = 8
)

// Plausibility filter limits.
const (
	MaxSamples    = 64    // values sampled from a candidate block
	NearZero      = 1e-30 // magnitudes below this count as zero fill
	MinValueRange = 1e-6  // smallest sampled max-min spread of a real block
)

// marker is the float32 read from a status word holding the integer 1.
var marker = math.Float32frombits(1)

// LayoutKind identifies a layout hypothesis.
type LayoutKind uint8

const (
	LayoutPlain       LayoutKind = 0x1 // contiguous float32 values
	LayoutInterleaved LayoutKind = 0x2 // 8-byte records of float32 value and uint32 status
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutPlain:
		return "plain"
	case LayoutInterleaved:
		return "interleaved"
	default:
		return "unknown"
	}
}

// Layout locates an intensity block inside a buffer.
//
// Value i is the little-endian float32 at DataOffset + i*Stride + ValueOffset.
type Layout struct {
	Kind        LayoutKind
	Count       int
	DataOffset  int
	Stride      int
	ValueOffset int
}

// End returns the offset just past the block.
func (l Layout) End() int {
	return l.DataOffset + l.Count*l.Stride
}

// ValueAt returns the i-th intensity of the block.
func (l Layout) ValueAt(buf endian.Buffer, i int) (float32, bool) {
	return buf.Float32At(l.DataOffset + i*l.Stride + l.ValueOffset)
}

func newBuffer(data []byte) endian.Buffer {
	return endian.NewBuffer(data, endian.GetLittleEndianEngine())
}

// PlainLayout searches for a tail block of contiguous float32 values.
//
// Every byte offset is read as a little-endian uint32 count. An offset
// qualifies when the count lies in [MinCount, MaxCount], the count*4 trailing
// bytes start strictly after the offset and the block is Plausible. The
// largest qualifying count wins; ties keep the lowest offset.
//
// Parameters:
//   - data: Whole file contents
//
// Returns:
//   - Layout: Best plain layout
//   - bool: Whether any offset qualified
func PlainLayout(data []byte) (Layout, bool) {
	buf := newBuffer(data)
	n := len(data)

	var (
		best  Layout
		found bool
	)
	for off := 0; off < n-4; off++ {
		v, _ := buf.Uint32At(off)
		count := int(v)
		if count < MinCount || count > MaxCount {
			continue
		}
		if found && count <= best.Count {
			continue
		}

		size := count * plainStride
		if size > n {
			continue
		}
		dataOffset := n - size
		if dataOffset <= off {
			continue
		}

		layout := Layout{
			Kind:       LayoutPlain,
			Count:      count,
			DataOffset: dataOffset,
			Stride:     plainStride,
		}
		if !Plausible(data, layout) {
			continue
		}

		best, found = layout, true
	}

	return best, found
}

// InterleavedLayout searches for a tail block of 8-byte value/status records.
//
// Both record orders are tried, value first (ValueOffset 0) and status first
// (ValueOffset 4). Records are walked backwards from the end of the buffer while
// the status word is at most MaxStatusFlag and the value is finite with a
// magnitude of at most MaxMagnitude. A run of at least MinInterleavedRun
// records that is Plausible becomes a candidate; the longer run wins and ties
// keep the value-first order.
//
// Parameters:
//   - data: Whole file contents
//
// Returns:
//   - Layout: Best interleaved layout
//   - bool: Whether either order qualified
func InterleavedLayout(data []byte) (Layout, bool) {
	candidates := make([]Layout, 0, 2)
	for _, valueOffset := range []int{0, 4} {
		if l, ok := interleavedRun(data, valueOffset); ok {
			candidates = append(candidates, l)
		}
	}

	return longestLayout(candidates)
}

// interleavedRun walks records backwards from the end of data for one record order.
func interleavedRun(data []byte, valueOffset int) (Layout, bool) {
	buf := newBuffer(data)
	n := len(data)
	flagOffset := 4 - valueOffset

	run := 0
	for n >= (run+1)*interleavedStride {
		rec := n - (run+1)*interleavedStride

		flag, ok := buf.Uint32At(rec + flagOffset)
		if !ok || flag > MaxStatusFlag {
			break
		}
		v, ok := buf.Float32At(rec + valueOffset)
		if !ok || !finite(v) || math.Abs(float64(v)) > MaxMagnitude {
			break
		}
		run++
	}
	if run < MinInterleavedRun {
		return Layout{}, false
	}

	layout := Layout{
		Kind:        LayoutInterleaved,
		Count:       run,
		DataOffset:  n - run*interleavedStride,
		Stride:      interleavedStride,
		ValueOffset: valueOffset,
	}

	return layout, Plausible(data, layout)
}

// longestLayout returns the candidate with the largest Count; ties keep the earliest.
func longestLayout(candidates []Layout) (Layout, bool) {
	if len(candidates) == 0 {
		return Layout{}, false
	}

	best := candidates[0]
	for _, l := range candidates[1:] {
		if l.Count > best.Count {
			best = l
		}
	}

	return best, true
}

// Layouts returns the plausible layout hypotheses in evaluation order:
// interleaved first, then plain.
func Layouts(data []byte) []Layout {
	layouts := make([]Layout, 0, 2)
	if l, ok := InterleavedLayout(data); ok {
		layouts = append(layouts, l)
	}
	if l, ok := PlainLayout(data); ok {
		layouts = append(layouts, l)
	}

	return layouts
}

// Plausible reports whether a candidate block looks like measured intensities.
//
// Up to MaxSamples values are sampled evenly across the block, first and last
// included. The block is rejected when any sample is non-finite or exceeds
// MaxMagnitude, more than a quarter of the samples are the status marker
// (integer 1 read as a float), more than a third are below NearZero, or the
// sampled range is under MinValueRange.
func Plausible(data []byte, l Layout) bool {
	if l.Count <= 0 {
		return false
	}

	buf := newBuffer(data)
	samples := min(MaxSamples, l.Count)
	denom := max(samples-1, 1)

	var (
		markers, zeros int
		lo             = float32(math.Inf(1))
		hi             = float32(math.Inf(-1))
	)
	for s := range samples {
		v, ok := l.ValueAt(buf, s*(l.Count-1)/denom)
		if !ok || !finite(v) || math.Abs(float64(v)) > MaxMagnitude {
			return false
		}
		if v == marker {
			markers++
		}
		if math.Abs(float64(v)) < NearZero {
			zeros++
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	switch {
	case markers*4 > samples:
		return false
	case zeros*3 > samples:
		return false
	case math.Abs(float64(hi-lo)) < MinValueRange:
		return false
	}

	return true
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
