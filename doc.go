// Package gaussfit fits a quartic polynomial to scattered samples by least squares.
//
// The engine solves the normal equations of the fixed basis 1, x, x², x³, x⁴
// with an in-place Cholesky factorization, clamps every diagonal division
// through a divisor guard, and then refines the solution with residual
// correction passes until the sum of squared residuals stops improving.
//
// # Basic Usage
//
//	xs := []float64{-1, -0.5, 0, 0.5, 1, 0.25, -0.25}
//	ys := []float64{3.1, 1.2, 0.9, 1.4, 2.8, 1.1, 1.0}
//
//	res, err := gaussfit.Fit(xs, ys, basis.Size, len(xs))
//	if err != nil {
//	    // res.Status tells why: status.SingularMatrix, status.NoSolutionFound, ...
//	    log.Fatal(err)
//	}
//	y := res.Estimate(0.3)
//
// # Status Codes
//
// Every fit that reaches the engine reports one of the codes of package
// status. A non-OK status is also returned as an error wrapping the
// matching sentinel, so both styles work:
//
//	if errors.Is(err, status.ErrSingularMatrix) { ... }
//	if res != nil && res.Status == status.SingularMatrix { ... }
//
// status.NoSolutionFound is a quality signal rather than a computation
// failure: the fit ran, but it did not explain any of the signal energy.
//
// # Configuration
//
// A Fitter is configured with functional options:
//
//	f, err := gaussfit.NewFitter(
//	    gaussfit.WithDivisorGuard(guard.Divisor{Threshold: 1e-4, Default: 1e-4}),
//	    gaussfit.WithMaxIterations(16),
//	    gaussfit.WithLogger(zerolog.New(os.Stderr)),
//	)
//
// Package config loads the same settings from a TOML file.
//
// # Thread Safety
//
// Each fit works on its own normal-equation storage, so a Fitter may be
// used from multiple goroutines. The sample slices are only read.
package gaussfit
