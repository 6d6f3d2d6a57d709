package gaussfit

import (
	"bytes"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/guard"
	"github.com/arloliu/gaussfit/metrics"
	"github.com/arloliu/gaussfit/sample"
	"github.com/arloliu/gaussfit/status"
)

// referenceFit solves the least-squares problem through a QR factorization
// of the design matrix.
func referenceFit(t *testing.T, xs, ys []float64) basis.Vector {
	t.Helper()

	n := len(xs)
	a := mat.NewDense(n, basis.Size, nil)
	for k, x := range xs {
		b := basis.Evaluate(x)
		a.SetRow(k, b[:])
	}
	y := mat.NewVecDense(n, append([]float64(nil), ys...))

	var qr mat.QR
	qr.Factorize(a)

	var c mat.VecDense
	require.NoError(t, qr.SolveVecTo(&c, false, y))

	var out basis.Vector
	for i := range basis.Size {
		out[i] = c.AtVec(i)
	}

	return out
}

func residual(xs, ys []float64, c basis.Vector) float64 {
	s := 0.0
	for k, x := range xs {
		d := ys[k] - c.Dot(basis.Evaluate(x))
		s += d * d
	}

	return s
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range n {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}

	return out
}

func quartic(c basis.Vector, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.Dot(basis.Evaluate(x))
	}

	return ys
}

func TestFit_SevenPoints(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6}
	ys := []float64{1, 2, 0, 2, 3, 2, 8}

	res, err := Fit(xs, ys, 5, 7)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, status.OK, res.Status)
	require.Equal(t, 7, res.Samples)
	require.InDelta(t, 86.0, res.SignalEnergy, 1e-12)

	// exact least-squares solution
	want := basis.Vector{
		1.2727272727272727,
		-1.6024531024531024,
		1.6893939393939394,
		-0.5252525252525253,
		0.05303030303030303,
	}
	for i := range basis.Size {
		require.InDelta(t, want[i], res.Coefficients[i], 1e-6, "coefficient %d", i)
	}

	s := residual(xs, ys, res.Coefficients)
	require.Less(t, s, 86.0)
	require.InDelta(t, 5.87012987012987, s, 1e-6)
	require.InDelta(t, s, res.Residual, 1e-6)
}

func TestFit_InsufficientSamples(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6}
	ys := []float64{1, 2, 0, 2, 3, 2, 8}

	for count := range basis.Size {
		res, err := Fit(xs, ys, 5, count)
		require.Error(t, err)
		require.ErrorIs(t, err, status.ErrInsufficientSamples)
		require.NotNil(t, res)

		require.Equal(t, status.InsufficientSamples, res.Status)
		require.Equal(t, 1, res.Status.Code())
		require.Equal(t, basis.Vector{}, res.Coefficients)
		require.Zero(t, res.Passes)
	}
}

func TestFit_NegativeCount(t *testing.T) {
	res, err := Fit(nil, nil, 5, -3)
	require.ErrorIs(t, err, status.ErrInsufficientSamples)
	require.NotNil(t, res)
	require.Zero(t, res.Samples)
}

func TestFit_ExactQuartic(t *testing.T) {
	want := basis.Vector{0.5, -1.25, 2, 0.75, -3}
	xs := linspace(-1, 1, 21)
	ys := quartic(want, xs)

	res, err := Fit(xs, ys, 5, len(xs))
	require.NoError(t, err)
	require.True(t, res.Converged)

	for i := range basis.Size {
		require.InDelta(t, want[i], res.Coefficients[i], 1e-4, "coefficient %d", i)
	}
	require.Less(t, res.Residual, 1e-8)
	require.Greater(t, res.SignalEnergy-res.Residual, 0.001)
}

func TestFit_MatchesQRReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := range 20 {
		n := 8 + rng.IntN(40)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range n {
			xs[i] = rng.Float64()*2 - 1
			ys[i] = 3*xs[i]*xs[i] - xs[i] + 0.5 + rng.NormFloat64()
		}

		res, err := Fit(xs, ys, 5, n)
		require.NoError(t, err, "trial %d", trial)

		ref := referenceFit(t, xs, ys)
		got := residual(xs, ys, res.Coefficients)
		best := residual(xs, ys, ref)

		require.InDelta(t, best, got, 1e-6*(1+best), "trial %d", trial)
		require.LessOrEqual(t, got, res.SignalEnergy, "trial %d", trial)
	}
}

func TestFit_UsesOnlyFirstCountSamples(t *testing.T) {
	want := basis.Vector{1, 0, -2, 0, 1}
	xs := linspace(-1, 1, 11)
	ys := quartic(want, xs)

	// garbage past count must not influence the fit
	xsLong := append(append([]float64(nil), xs...), 100, 200, 300)
	ysLong := append(append([]float64(nil), ys...), -1e6, 1e6, 42)

	a, err := Fit(xs, ys, 5, len(xs))
	require.NoError(t, err)
	b, err := Fit(xsLong, ysLong, 5, len(xs))
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestFit_IdenticalAbscissae(t *testing.T) {
	xs := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	ys := []float64{1, 2, 3, 4, 5, 6}

	res, err := Fit(xs, ys, 5, len(xs))
	require.Error(t, err)
	require.NotNil(t, res)

	require.True(t, res.Status.IsMatrixError(), "got %s", res.Status)
	require.Contains(t, []status.Status{status.SingularMatrix, status.NotPositiveDefinite}, res.Status)
	require.Equal(t, basis.Vector{}, res.Coefficients)
}

func TestFit_ZeroSignal(t *testing.T) {
	xs := linspace(-1, 1, 9)
	ys := make([]float64, len(xs))

	res, err := Fit(xs, ys, 5, len(xs))
	require.ErrorIs(t, err, status.ErrNoSolutionFound)
	require.Equal(t, status.NoSolutionFound, res.Status)
	require.Equal(t, 2, res.Status.Code())
	require.Zero(t, res.SignalEnergy)
	require.Zero(t, res.Residual)
	require.True(t, res.Converged)
}

func TestFit_SmallSignalHasNoSolution(t *testing.T) {
	// Σy² stays below the absolute improvement threshold even though the
	// data is fitted exactly.
	xs := linspace(-1, 1, 9)
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = 0.01
	}

	res, err := Fit(xs, ys, 5, len(xs))
	require.ErrorIs(t, err, status.ErrNoSolutionFound)
	require.Equal(t, status.NoSolutionFound, res.Status)
	require.InDelta(t, 0.01, res.Coefficients[0], 1e-9)
}

func TestFit_Idempotent(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6}
	ys := []float64{1, 2, 0, 2, 3, 2, 8}

	a, errA := Fit(xs, ys, 5, 7)
	b, errB := Fit(xs, ys, 5, 7)

	require.NoError(t, errA)
	require.NoError(t, errB)
	require.Equal(t, a, b)
}

func TestFit_InputsUnchanged(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6}
	ys := []float64{1, 2, 0, 2, 3, 2, 8}
	xsCopy := append([]float64(nil), xs...)
	ysCopy := append([]float64(nil), ys...)

	_, err := Fit(xs, ys, 5, 7)
	require.NoError(t, err)

	require.Equal(t, xsCopy, xs)
	require.Equal(t, ysCopy, ys)
}

func TestFit_Concurrent(t *testing.T) {
	const workers = 16

	inputs := make([]sample.Set, workers)
	expected := make([]*Result, workers)
	for w := range workers {
		c := basis.Vector{float64(w), 1, -0.5 * float64(w), 0.25, 1}
		xs := linspace(-1, 1, 15+w)
		inputs[w] = sample.Set{X: xs, Y: quartic(c, xs)}

		res, err := FitSet(inputs[w])
		require.NoError(t, err)
		expected[w] = res
	}

	results := make([]*Result, workers)
	fitErrs := make([]error, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				results[w], fitErrs[w] = FitSet(inputs[w])
			}
		}()
	}
	wg.Wait()

	for w := range workers {
		require.NoError(t, fitErrs[w])
		assert.Equal(t, expected[w], results[w], "worker %d", w)
	}
}

func TestFit_RejectedArguments(t *testing.T) {
	xs := linspace(-1, 1, 7)
	ys := quartic(basis.Vector{1, 1, 1, 1, 1}, xs)

	t.Run("degrees", func(t *testing.T) {
		for _, degrees := range []int{0, 3, 4, 6} {
			res, err := Fit(xs, ys, degrees, len(xs))
			require.ErrorIs(t, err, errs.ErrUnsupportedDegrees)
			require.Nil(t, res)

			_, ok := status.FromError(err)
			require.False(t, ok)
		}
	})

	t.Run("count beyond x", func(t *testing.T) {
		res, err := Fit(xs[:5], ys, 5, 7)
		require.ErrorIs(t, err, errs.ErrSampleCount)
		require.Nil(t, res)
	})

	t.Run("count beyond y", func(t *testing.T) {
		res, err := Fit(xs, ys[:6], 5, 7)
		require.ErrorIs(t, err, errs.ErrSampleCount)
		require.Nil(t, res)
	})
}

func TestFit_NonFiniteSamples(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"nan y", 0.25, math.NaN()},
		{"inf y", 0.25, math.Inf(1)},
		{"nan x", math.NaN(), 1},
		{"inf x", math.Inf(-1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := []float64{-1, -0.5, 0, 0.5, 1, tt.x}
			ys := []float64{1, 2, 1, 2, 3, tt.y}

			res, err := Fit(xs, ys, 5, len(xs))
			require.ErrorIs(t, err, errs.ErrNonFiniteSample)
			require.Nil(t, res)
		})
	}

	t.Run("beyond count", func(t *testing.T) {
		xs := []float64{-1, -0.5, 0, 0.5, 1, math.NaN()}
		ys := []float64{1, 2, 1, 2, 3, math.NaN()}

		res, err := Fit(xs, ys, 5, 5)
		require.NoError(t, err)
		require.Equal(t, status.OK, res.Status)
	})
}

func TestFit_OverflowIsNotOK(t *testing.T) {
	xs := linspace(-1e100, 1e100, 7)
	ys := []float64{1, 2, 3, 4, 5, 6, 7}

	res, err := Fit(xs, ys, 5, len(xs))
	require.Error(t, err)
	require.NotNil(t, res)
	require.NotEqual(t, status.OK, res.Status)
}

func TestFit_ShortSlicesBelowBasisSize(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{1, 2}

	res, err := Fit(xs, ys, 5, 3)
	require.ErrorIs(t, err, status.ErrInsufficientSamples)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Status.Code())
}

func TestFitter_StatusFromError(t *testing.T) {
	_, err := Fit([]float64{1, 2}, []float64{1, 2}, 5, 2)
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, status.InsufficientSamples, st)
}

func TestNewFitter_Options(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f, err := NewFitter()
		require.NoError(t, err)
		require.Equal(t, DefaultMaxIterations, f.maxIterations)
		require.Equal(t, guard.DefaultDivisor, f.solver.Guard())
	})

	t.Run("invalid iterations", func(t *testing.T) {
		for _, n := range []int{0, -1} {
			f, err := NewFitter(WithMaxIterations(n))
			require.ErrorIs(t, err, errs.ErrInvalidIterations)
			require.Nil(t, f)
		}
	})

	t.Run("invalid guard", func(t *testing.T) {
		f, err := NewFitter(WithDivisorGuard(guard.Divisor{Threshold: 0.1, Default: 0}))
		require.ErrorIs(t, err, errs.ErrInvalidConfig)
		require.Nil(t, f)
	})

	t.Run("custom guard", func(t *testing.T) {
		g := guard.Divisor{Threshold: 1e-6, Default: 1e-6}
		f, err := NewFitter(WithDivisorGuard(g), WithMaxIterations(8))
		require.NoError(t, err)
		require.Equal(t, g, f.solver.Guard())
		require.Equal(t, 8, f.maxIterations)
	})

	t.Run("nil recorder", func(t *testing.T) {
		f, err := NewFitter(WithRecorder(nil))
		require.NoError(t, err)
		require.Equal(t, metrics.Nop{}, f.recorder)
	})
}

func TestFitter_IterationBound(t *testing.T) {
	// Clamping every pivot to a large value turns the solver into a small
	// gradient step, so each pass still improves the residual.
	g := guard.Divisor{Threshold: 1e6, Default: 1e3}
	xs := linspace(-1, 1, 21)
	ys := quartic(basis.Vector{1, 2, 3, 4, 5}, xs)

	for _, limit := range []int{1, 3} {
		f, err := NewFitter(WithDivisorGuard(g), WithMaxIterations(limit))
		require.NoError(t, err)

		res, _ := f.Fit(xs, ys, 5, len(xs))
		require.NotNil(t, res)
		require.Equal(t, limit, res.Passes)
		require.False(t, res.Converged)
		require.Contains(t, []status.Status{status.OK, status.NoSolutionFound}, res.Status)
	}
}

func TestFitter_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	f, err := NewFitter(WithLogger(logger))
	require.NoError(t, err)

	_, err = f.Fit([]float64{0, 1, 2, 3, 4, 5, 6}, []float64{1, 2, 0, 2, 3, 2, 8}, 5, 7)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"level":"debug"`)
	require.Contains(t, out, `"status":"ok"`)
	require.Contains(t, out, `"samples":7`)
	require.Contains(t, out, `"message":"fit complete"`)

	buf.Reset()
	_, err = f.Fit([]float64{0, 1}, []float64{1, 2}, 5, 2)
	require.Error(t, err)
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), `"status":"insufficient_samples"`)
}

func TestFitter_Recorder(t *testing.T) {
	rec := metrics.NewPrometheus("gaussfit_test")

	f, err := NewFitter(WithRecorder(rec))
	require.NoError(t, err)

	xs := linspace(-1, 1, 11)
	ys := quartic(basis.Vector{2, 0, 1, 0, -1}, xs)

	for range 3 {
		_, err := f.Fit(xs, ys, 5, len(xs))
		require.NoError(t, err)
	}
	_, err = f.Fit(xs, ys, 5, 4)
	require.Error(t, err)

	require.InDelta(t, 3.0, testutil.ToFloat64(rec.Fits.WithLabelValues(status.OK.String())), 0)
	require.InDelta(t, 1.0, testutil.ToFloat64(rec.Fits.WithLabelValues(status.InsufficientSamples.String())), 0)
}

func TestResult_Estimate(t *testing.T) {
	res := &Result{Coefficients: basis.Vector{1, 2, 3, 4, 5}}

	require.InDelta(t, 15.0, res.Estimate(1), 1e-12)
	require.InDelta(t, 1.0, res.Estimate(0), 1e-12)
	require.InDelta(t, 3.0, res.Estimate(-1), 1e-12)
	require.False(t, math.IsNaN(res.Estimate(0.3)))
	require.Contains(t, res.String(), "Status: ok")
}
