package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/gaussfit"
	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/internal/options"
	"github.com/arloliu/gaussfit/sample"
	"github.com/arloliu/gaussfit/status"
)

// Analyze fits a quartic to set and reports its quality.
//
// Parameters:
//   - set: Samples to fit
//   - opts: Analysis options
//
// Returns:
//   - *Model: The fitted model, also returned alongside a status.ErrNoSolutionFound error
//   - error: Argument errors and engine failures
//
// Example:
//
//	model, err := regression.Analyze(set, regression.WithRescale())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula, model.RSquared)
func Analyze(set sample.Set, opts ...AnalyzeOption) (*Model, error) {
	cfg, err := newAnalyzeConfig(opts)
	if err != nil {
		return nil, err
	}

	return analyze(cfg, set)
}

// AnalyzeEach analyzes each set separately, which is useful for detecting
// calibration drift between runs.
//
// Every set must produce a model; the first failing set aborts the
// analysis with an error naming its index.
func AnalyzeEach(sets []sample.Set, opts ...AnalyzeOption) ([]*Model, error) {
	if len(sets) == 0 {
		return nil, errs.ErrNoSampleSets
	}

	cfg, err := newAnalyzeConfig(opts)
	if err != nil {
		return nil, err
	}

	models := make([]*Model, len(sets))
	for i, set := range sets {
		m, err := analyze(cfg, set)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze set %d: %w", i, err)
		}
		models[i] = m
	}

	return models, nil
}

func newAnalyzeConfig(opts []AnalyzeOption) (AnalyzeConfig, error) {
	var cfg AnalyzeConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return cfg, err
	}

	if cfg.Fitter == nil {
		f, err := gaussfit.NewFitter()
		if err != nil {
			return cfg, err
		}
		cfg.Fitter = f
	}

	return cfg, nil
}

func analyze(cfg AnalyzeConfig, set sample.Set) (*Model, error) {
	if len(set.X) != len(set.Y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", errs.ErrSampleLength, len(set.X), len(set.Y))
	}

	fitSet := set
	center, halfWidth := 0.0, 0.0
	if cfg.Rescale {
		fitSet, center, halfWidth = set.Rescale()
	}

	res, fitErr := cfg.Fitter.FitSet(fitSet)
	if res == nil || (res.Status != status.OK && res.Status != status.NoSolutionFound) {
		return nil, fitErr
	}

	var estimator Estimator
	if halfWidth != 0 {
		estimator = NewScaledQuarticEstimator(res.Coefficients, center, halfWidth)
	} else {
		estimator = NewQuarticEstimator(res.Coefficients)
	}

	predicted := make([]float64, set.Len())
	for i, x := range set.X {
		predicted[i] = estimator.Estimate(x)
	}
	r2, rmse := fitStats(set.Y, predicted)

	return &Model{
		Type:         estimator.Type(),
		Coefficients: estimator.Coefficients(),
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula(estimator),
		Estimator:    estimator,
		Status:       res.Status,
		Residual:     res.Residual,
		Passes:       res.Passes,
		Samples:      res.Samples,
		Fingerprint:  set.Fingerprint(),
	}, fitErr
}

// fitStats returns R² and RMSE of predicted against observed.
//
// R² is computed by gonum's stat.RSquaredFrom. Constant observations have
// no variance to explain; they report R² = 1 when the fit reproduces them
// to rounding and 0 otherwise.
func fitStats(observed, predicted []float64) (r2, rmse float64) {
	n := len(observed)
	if n == 0 {
		return 0, 0
	}

	ssRes := 0.0
	for i := range observed {
		d := observed[i] - predicted[i]
		ssRes += d * d
	}
	rmse = math.Sqrt(ssRes / float64(n))

	if !slices.ContainsFunc(observed, func(y float64) bool { return y != observed[0] }) {
		if rmse <= 1e-9*max(1, math.Abs(observed[0])) {
			return 1, rmse
		}

		return 0, rmse
	}

	return stat.RSquaredFrom(predicted, observed, nil), rmse
}

func formula(e Estimator) string {
	c := e.Coefficients()

	v, suffix := "x", ""
	if s, ok := e.(*ScaledQuarticEstimator); ok {
		v = "u"
		suffix = fmt.Sprintf(", u = (x - %.4g) / %.4g", s.center, s.halfWidth)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "y = %.4g", c[0])
	for i := 1; i < basis.Size; i++ {
		sign, mag := '+', c[i]
		if mag < 0 {
			sign, mag = '-', -mag
		}
		fmt.Fprintf(&sb, " %c %.4g*%s", sign, mag, v)
		if i > 1 {
			fmt.Fprintf(&sb, "^%d", i)
		}
	}
	sb.WriteString(suffix)

	return sb.String()
}
