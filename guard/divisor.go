// Package guard protects divisions in the solver against near-zero divisors.
//
// A Divisor clamp never aborts a computation. When a candidate divisor is
// too small in magnitude it is replaced by a configured default, so a
// near-singular pivot degrades the result instead of blowing it up.
package guard

import (
	"fmt"
	"math"
)

const (
	// DefaultThreshold is the minimum divisor magnitude accepted as is.
	DefaultThreshold = 0.001
	// DefaultValue replaces divisors below DefaultThreshold.
	DefaultValue = 0.001
)

// DefaultDivisor is the process-wide divisor configuration.
var DefaultDivisor = Divisor{Threshold: DefaultThreshold, Default: DefaultValue}

// Divisor is the divisor clamp configuration.
//
// It is a plain value and is never mutated while solving.
type Divisor struct {
	// Threshold is the minimum absolute value a divisor may have.
	Threshold float64
	// Default is returned in place of divisors whose magnitude is below Threshold.
	Default float64
}

// Check returns d unchanged when |d| >= Threshold, otherwise Default.
func (g Divisor) Check(d float64) float64 {
	if math.Abs(d) < g.Threshold {
		return g.Default
	}

	return d
}

// Validate reports whether the configuration can protect a division.
//
// The threshold must be a finite non-negative number and the default must be
// a finite non-zero number, otherwise the clamp itself could produce a
// division by zero.
func (g Divisor) Validate() error {
	if math.IsNaN(g.Threshold) || math.IsInf(g.Threshold, 0) || g.Threshold < 0 {
		return fmt.Errorf("invalid divisor threshold: %v", g.Threshold)
	}
	if math.IsNaN(g.Default) || math.IsInf(g.Default, 0) || g.Default == 0 {
		return fmt.Errorf("invalid divisor default: %v", g.Default)
	}

	return nil
}

// String returns a compact description of the configuration.
func (g Divisor) String() string {
	return fmt.Sprintf("Divisor{Threshold: %g, Default: %g}", g.Threshold, g.Default)
}
