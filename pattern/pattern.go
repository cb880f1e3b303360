// Package pattern defines the canonical decoded diffraction pattern.
package pattern

import (
	"fmt"
	"math"

	"github.com/arloliu/geddes/errs"
)

// Pattern is a decoded diffraction pattern.
//
// X holds the scan-axis positions and Y the measured intensities; both always
// have the same length. E holds per-point uncertainties and is either nil or
// exactly as long as X.
type Pattern struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	E []float64 `json:"e,omitempty"`
}

// Len returns the number of points in the pattern.
func (p Pattern) Len() int {
	return len(p.X)
}

// HasUncertainty reports whether the pattern carries an uncertainty axis.
func (p Pattern) HasUncertainty() bool {
	return p.E != nil
}

// Validate checks the length invariants of the pattern.
//
// Returns:
//   - error: errs.ErrInconsistentPattern if len(Y) != len(X) or E is present with a different length
func (p Pattern) Validate() error {
	if len(p.Y) != len(p.X) {
		return fmt.Errorf("%w: %d x values, %d y values", errs.ErrInconsistentPattern, len(p.X), len(p.Y))
	}
	if p.E != nil && len(p.E) != len(p.X) {
		return fmt.Errorf("%w: %d x values, %d e values", errs.ErrInconsistentPattern, len(p.X), len(p.E))
	}

	return nil
}

// Range returns the smallest and largest x position.
// Both are NaN for an empty pattern.
func (p Pattern) Range() (float64, float64) {
	if len(p.X) == 0 {
		return math.NaN(), math.NaN()
	}

	lo, hi := p.X[0], p.X[0]
	for _, v := range p.X[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return lo, hi
}

// Arithmetic generates n axis positions start, start+step, start+2*step, ...
func Arithmetic(start, step float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = start + float64(i)*step
	}

	return x
}

// Span generates n axis positions evenly covering [start, end].
//
// A single point is placed at start; otherwise the step is (end-start)/(n-1).
func Span(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}

	return Arithmetic(start, (end-start)/float64(n-1), n)
}
