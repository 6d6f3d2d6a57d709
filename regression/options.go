package regression

import (
	"github.com/arloliu/gaussfit"
	"github.com/arloliu/gaussfit/internal/options"
)

// AnalyzeConfig holds the settings of an analysis.
type AnalyzeConfig struct {
	// Fitter runs the fits. Nil selects a default Fitter.
	Fitter *gaussfit.Fitter
	// Rescale maps x onto [-1, 1] before fitting.
	Rescale bool
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithFitter sets the fitter used for every set.
func WithFitter(f *gaussfit.Fitter) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Fitter = f
	})
}

// WithRescale fits in the rescaled domain and returns a scaled quartic.
// Sets whose x values are all equal are fitted unscaled.
func WithRescale() AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Rescale = true
	})
}
