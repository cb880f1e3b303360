package bruker

import "math"

// Scan axis bounds in degrees two-theta.
const (
	MinStep  = 1e-6 // exclusive
	MaxStep  = 10.0
	MinStart = -180.0
	MaxEnd   = 360.0
)

// Scoring constants. They are empirically tuned and kept fixed for compatibility.
const (
	MaxSpanScore   = 360.0
	StartBonus     = 50.0 // start within [StartBonusMin, StartBonusMax]
	StartBonusMin  = 0.0
	StartBonusMax  = 180.0
	StepBonus      = 25.0 // step within [StepBonusMin, StepBonusMax]
	StepBonusMin   = 1e-4
	StepBonusMax   = 0.5
	anchorDistance = 16 // start/step pair directly preceding a count field
	anchorWindow   = 64 // bytes searched before a count field
)

// Metadata is a scored (start, step) candidate for the scan axis.
type Metadata struct {
	Start  float64
	Step   float64
	Score  float64
	Anchor int // offset of the count field the pair was found next to
	Offset int // offset of the start value
}

// End returns the last scan position for count points.
func (m Metadata) End(count int) float64 {
	return scanEnd(m.Start, m.Step, count)
}

// Anchors returns every offset in [0, min(end, len(data)-4)] whose
// little-endian uint32 equals count, in ascending order.
func Anchors(data []byte, count, end int) []int {
	if end < 4 || count < 0 || int64(count) > math.MaxUint32 {
		return nil
	}

	buf := newBuffer(data)
	end = min(end, len(data)-4)

	var anchors []int
	for off := 0; off <= end; off++ {
		if v, ok := buf.Uint32At(off); ok && int(v) == count {
			anchors = append(anchors, off)
		}
	}

	return anchors
}

// MetadataCandidates reads the valid (start, step) pairs around each anchor.
//
// For every anchor the pair exactly 16 bytes before it is tried first, then the
// pair at every offset of the 64 bytes preceding it. Each pair is two adjacent
// little-endian float64 values. Pairs failing ValidStartStep are skipped and the
// rest are returned in evaluation order with their Score.
func MetadataCandidates(data []byte, count int, anchors []int) []Metadata {
	buf := newBuffer(data)

	var out []Metadata
	try := func(anchor, off int) {
		if off < 0 {
			return
		}
		start, ok := buf.Float64At(off)
		if !ok {
			return
		}
		step, ok := buf.Float64At(off + 8)
		if !ok || !ValidStartStep(start, step, count) {
			return
		}

		out = append(out, Metadata{
			Start:  start,
			Step:   step,
			Score:  Score(start, step, count),
			Anchor: anchor,
			Offset: off,
		})
	}

	for _, anchor := range anchors {
		try(anchor, anchor-anchorDistance)
		for off := max(anchor-anchorWindow, 0); off < anchor; off++ {
			try(anchor, off)
		}
	}

	return out
}

// BestMetadata returns the highest scoring candidate; ties keep the earliest.
func BestMetadata(candidates []Metadata) (Metadata, bool) {
	if len(candidates) == 0 {
		return Metadata{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return best, true
}

// ValidStartStep reports whether start and step describe a physical two-theta scan
// of count points.
//
// Both values must be finite with MinStep < step <= MaxStep. The implied end
// position must be finite, not below start and at most MaxEnd, and start must be
// at least MinStart.
func ValidStartStep(start, step float64, count int) bool {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(step) || math.IsInf(step, 0) {
		return false
	}
	if step <= MinStep || step > MaxStep {
		return false
	}

	end := scanEnd(start, step, count)
	if math.IsNaN(end) || math.IsInf(end, 0) || end < start {
		return false
	}

	return start >= MinStart && end <= MaxEnd
}

// Score ranks a valid (start, step) pair.
//
// The base score is the scan span capped at MaxSpanScore. StartBonus is added
// for a start inside [0, 180] and StepBonus for a step inside [1e-4, 0.5].
func Score(start, step float64, count int) float64 {
	score := min(step*float64(max(count-1, 0)), MaxSpanScore)
	if start >= StartBonusMin && start <= StartBonusMax {
		score += StartBonus
	}
	if step >= StepBonusMin && step <= StepBonusMax {
		score += StepBonus
	}

	return score
}

func scanEnd(start, step float64, count int) float64 {
	if count <= 1 {
		return start
	}

	return start + step*float64(count-1)
}
