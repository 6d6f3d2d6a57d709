package gaussfit

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/guard"
	"github.com/arloliu/gaussfit/internal/options"
	"github.com/arloliu/gaussfit/metrics"
)

// DefaultMaxIterations bounds the number of refinement passes of a fit.
const DefaultMaxIterations = 64

// FitterConfig holds the settings of a Fitter.
type FitterConfig struct {
	Guard         guard.Divisor
	MaxIterations int
	Logger        zerolog.Logger
	Recorder      metrics.Recorder
}

// DefaultFitterConfig returns the process-start configuration.
func DefaultFitterConfig() FitterConfig {
	return FitterConfig{
		Guard:         guard.DefaultDivisor,
		MaxIterations: DefaultMaxIterations,
		Logger:        zerolog.Nop(),
		Recorder:      metrics.Nop{},
	}
}

// FitterOption is a functional option for FitterConfig.
type FitterOption = options.Option[*FitterConfig]

// WithDivisorGuard sets the divisor clamp used by the solver.
func WithDivisorGuard(g guard.Divisor) FitterOption {
	return options.New(func(cfg *FitterConfig) error {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
		}
		cfg.Guard = g

		return nil
	})
}

// WithMaxIterations sets the maximum number of refinement passes.
func WithMaxIterations(n int) FitterOption {
	return options.New(func(cfg *FitterConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidIterations, n)
		}
		cfg.MaxIterations = n

		return nil
	})
}

// WithLogger sets the logger receiving one event per fit.
func WithLogger(logger zerolog.Logger) FitterOption {
	return options.NoError(func(cfg *FitterConfig) {
		cfg.Logger = logger
	})
}

// WithRecorder sets the metrics recorder. A nil recorder disables recording.
func WithRecorder(r metrics.Recorder) FitterOption {
	return options.NoError(func(cfg *FitterConfig) {
		if r == nil {
			r = metrics.Nop{}
		}
		cfg.Recorder = r
	})
}
