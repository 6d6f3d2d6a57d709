package gaussfit

import (
	"fmt"

	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/status"
)

// Result is the outcome of one fit.
type Result struct {
	// Status is the engine outcome code.
	Status status.Status
	// Coefficients holds c0..c4 of y = c0 + c1*x + c2*x² + c3*x³ + c4*x⁴.
	Coefficients basis.Vector
	// Samples is the number of samples the fit used.
	Samples int
	// SignalEnergy is Σ y² over the samples.
	SignalEnergy float64
	// Residual is the smallest sum of squared residuals reached by refinement.
	Residual float64
	// Passes is the number of correction passes applied to the initial solution.
	Passes int
	// Converged is false when the iteration bound stopped refinement.
	Converged bool
}

// Estimate evaluates the fitted polynomial at x.
func (r *Result) Estimate(x float64) float64 {
	return r.Coefficients.Dot(basis.Evaluate(x))
}

// String returns a compact description of the result.
func (r *Result) String() string {
	c := r.Coefficients

	return fmt.Sprintf("Result{Status: %s, Coefficients: [%.6g %.6g %.6g %.6g %.6g], Residual: %.6g, Passes: %d}",
		r.Status, c[0], c[1], c[2], c[3], c[4], r.Residual, r.Passes)
}
