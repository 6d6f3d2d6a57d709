package gaussfit

import (
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog"

	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/cholesky"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/internal/options"
	"github.com/arloliu/gaussfit/metrics"
	"github.com/arloliu/gaussfit/normal"
	"github.com/arloliu/gaussfit/sample"
	"github.com/arloliu/gaussfit/status"
)

// noSolutionThreshold is the minimum reduction of the residual below the
// signal energy for a fit to count as a solution.
const noSolutionThreshold = 0.001

// Fitter fits quartic polynomials with a fixed configuration.
//
// A Fitter is immutable and safe for concurrent use.
type Fitter struct {
	solver        cholesky.Solver
	maxIterations int
	logger        zerolog.Logger
	recorder      metrics.Recorder
}

var defaultFitter = newFitter(DefaultFitterConfig())

// NewFitter creates a Fitter from the default configuration and opts.
func NewFitter(opts ...FitterOption) (*Fitter, error) {
	cfg := DefaultFitterConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return newFitter(cfg), nil
}

func newFitter(cfg FitterConfig) *Fitter {
	return &Fitter{
		solver:        cholesky.NewSolver(cfg.Guard),
		maxIterations: cfg.MaxIterations,
		logger:        cfg.Logger,
		recorder:      cfg.Recorder,
	}
}

// Fit fits the first count samples of xs and ys with the default Fitter.
func Fit(xs, ys []float64, degrees, count int) (*Result, error) {
	return defaultFitter.Fit(xs, ys, degrees, count)
}

// FitSet fits all samples of s with the default Fitter.
func FitSet(s sample.Set) (*Result, error) {
	return defaultFitter.FitSet(s)
}

// FitSet fits all samples of s.
func (f *Fitter) FitSet(s sample.Set) (*Result, error) {
	return f.Fit(s.X, s.Y, basis.Size, s.Len())
}

// Fit fits the first count samples of xs and ys.
//
// degrees must equal basis.Size. When count reaches basis.Size, both slices
// must hold at least count finite samples. Otherwise the call is rejected
// with an errs sentinel and a nil Result. Fewer than basis.Size samples is
// an engine outcome, status.InsufficientSamples, whatever the slice lengths.
//
// For every call that reaches the engine the returned Result carries the
// status. When the status is not OK, the error wraps its sentinel and the
// Result describes how far the fit got; its coefficients are only
// meaningful for status.OK and status.NoSolutionFound.
func (f *Fitter) Fit(xs, ys []float64, degrees, count int) (*Result, error) {
	if degrees != basis.Size {
		return nil, fmt.Errorf("%w: %d, the basis has %d terms", errs.ErrUnsupportedDegrees, degrees, basis.Size)
	}
	if count >= basis.Size {
		if count > len(xs) || count > len(ys) {
			return nil, fmt.Errorf("%w: count %d, %d x values, %d y values", errs.ErrSampleCount, count, len(xs), len(ys))
		}
		if k := firstNonFinite(xs[:count], ys[:count]); k >= 0 {
			return nil, fmt.Errorf("%w: sample %d is (%v, %v)", errs.ErrNonFiniteSample, k, xs[k], ys[k])
		}
	}

	res := &Result{Samples: max(count, 0)}
	res.Status = f.run(xs, ys, count, res)
	f.observe(res)

	if err := res.Status.Err(); err != nil {
		return res, fmt.Errorf("fit of %d samples: %w", res.Samples, err)
	}

	return res, nil
}

// run executes the engine and fills res. The equations live on this
// call's stack, so concurrent fits never share a matrix.
func (f *Fitter) run(xs, ys []float64, count int, res *Result) status.Status {
	var eq normal.Equations

	if st := eq.Assemble(xs, ys, count); st != status.OK {
		return st
	}
	if st := f.solver.Solve(&eq.M, &eq.B, cholesky.ModeFactorSolve); st != status.OK {
		return st
	}
	coeffs := eq.B

	sh := 0.0
	for k := range count {
		sh += ys[k] * ys[k]
	}
	sm := sh
	res.SignalEnergy = sh

	passes := 0
	converged := false
	for {
		var corr basis.Vector
		s := 0.0
		for k := range count {
			b := basis.Evaluate(xs[k])
			y0 := ys[k]
			for i := range basis.Size {
				y0 -= coeffs[i] * b[i]
			}
			s += y0 * y0
			for i := range basis.Size {
				corr[i] += b[i] * y0
			}
		}

		if s >= sm {
			converged = true
			break
		}
		if passes >= f.maxIterations {
			break
		}

		if st := f.solver.Solve(&eq.M, &corr, cholesky.ModeSolve); st != status.OK {
			return st
		}
		coeffs.Add(corr)
		sm = s
		passes++
	}

	res.Coefficients = coeffs
	res.Residual = sm
	res.Passes = passes
	res.Converged = converged

	// overflow in the moments or the refinement leaves nothing usable
	if !isFinite(sm) || !isFinite(sh) || slices.ContainsFunc(coeffs[:], func(c float64) bool { return !isFinite(c) }) {
		return status.NoSolutionFound
	}
	if math.Abs(sm-sh) < noSolutionThreshold {
		return status.NoSolutionFound
	}

	return status.OK
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// firstNonFinite returns the index of the first sample pair holding a NaN
// or an infinity, or -1.
func firstNonFinite(xs, ys []float64) int {
	for k := range xs {
		if !isFinite(xs[k]) || !isFinite(ys[k]) {
			return k
		}
	}

	return -1
}

func (f *Fitter) observe(res *Result) {
	f.recorder.ObserveFit(res.Status, res.Passes)

	var ev *zerolog.Event
	if res.Status.IsOK() {
		ev = f.logger.Debug()
	} else {
		ev = f.logger.Warn()
	}

	ev.Str("status", res.Status.String()).
		Int("code", res.Status.Code()).
		Int("samples", res.Samples).
		Int("passes", res.Passes).
		Bool("converged", res.Converged).
		Float64("residual", res.Residual).
		Float64("signal_energy", res.SignalEnergy).
		Msg("fit complete")
}
