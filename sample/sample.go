// Package sample holds the (x, y) sample sets fed to the fitting engine.
//
// The engine expects x values in the conventional [-1, 1] domain but never
// checks or rescales them. The helpers here let callers do so before fitting.
package sample

import (
	"fmt"
	"math"

	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/internal/hash"
)

// Set is an ordered sequence of (X[i], Y[i]) samples.
//
// A Set does not own its slices; callers must not modify them while a fit
// reads them.
type Set struct {
	X []float64
	Y []float64
}

// New creates a set from xs and ys, which must have the same length.
func New(xs, ys []float64) (Set, error) {
	if len(xs) != len(ys) {
		return Set{}, fmt.Errorf("%w: %d x values, %d y values", errs.ErrSampleLength, len(xs), len(ys))
	}

	return Set{X: xs, Y: ys}, nil
}

// Len returns the number of complete samples.
func (s Set) Len() int {
	return min(len(s.X), len(s.Y))
}

// Head returns the first n samples, or the whole set when n >= Len.
func (s Set) Head(n int) Set {
	n = max(0, min(n, s.Len()))

	return Set{X: s.X[:n], Y: s.Y[:n]}
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	n := s.Len()
	out := Set{X: make([]float64, n), Y: make([]float64, n)}
	copy(out.X, s.X)
	copy(out.Y, s.Y)

	return out
}

// Domain returns the smallest and largest x value.
//
// ok is false for an empty set.
func (s Set) Domain() (lo, hi float64, ok bool) {
	n := s.Len()
	if n == 0 {
		return 0, 0, false
	}

	lo, hi = s.X[0], s.X[0]
	for _, x := range s.X[1:n] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	return lo, hi, true
}

// InUnitDomain reports whether every x lies in [-1, 1].
func (s Set) InUnitDomain() bool {
	for _, x := range s.X[:s.Len()] {
		if x < -1 || x > 1 || math.IsNaN(x) {
			return false
		}
	}

	return true
}

// Rescale maps x linearly from [lo, hi] onto [-1, 1].
//
// It returns a new set sharing Y with s together with the affine map
// parameters, so a fitted model can be evaluated at u = (x - center) / halfWidth.
// A set whose x values are all equal cannot be rescaled and is returned
// unchanged with halfWidth 0.
func (s Set) Rescale() (out Set, center, halfWidth float64) {
	lo, hi, ok := s.Domain()
	if !ok || hi == lo {
		return s, 0, 0
	}

	center = (hi + lo) / 2
	halfWidth = (hi - lo) / 2

	n := s.Len()
	xs := make([]float64, n)
	for i := range n {
		xs[i] = (s.X[i] - center) / halfWidth
	}

	return Set{X: xs, Y: s.Y[:n]}, center, halfWidth
}

// SignalEnergy returns Σ y² over the set.
func (s Set) SignalEnergy() float64 {
	sum := 0.0
	for _, y := range s.Y[:s.Len()] {
		sum += y * y
	}

	return sum
}

// Fingerprint returns a 64-bit xxHash of the sample bits.
//
// Two sets share a fingerprint when their samples are bitwise identical,
// which makes it usable as a deduplication key for calibration runs.
func (s Set) Fingerprint() uint64 {
	n := s.Len()

	return hash.Floats(s.X[:n], s.Y[:n])
}
