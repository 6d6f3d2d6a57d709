// Package metrics records fit outcomes.
//
// A Recorder is handed to a gaussfit.Fitter and observes every fit the
// engine completes. Prometheus exports the observations through
// github.com/prometheus/client_golang.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/gaussfit/status"
)

// Recorder observes completed fits.
//
// Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveFit records the final status of a fit and the number of
	// refinement passes that corrected the coefficients.
	ObserveFit(st status.Status, passes int)
}

// Nop is a Recorder that discards observations.
type Nop struct{}

var _ Recorder = Nop{}

// ObserveFit implements Recorder.
func (Nop) ObserveFit(status.Status, int) {}

// Prometheus records fits as prometheus collectors.
type Prometheus struct {
	Fits   *prometheus.CounterVec
	Passes prometheus.Histogram
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates unregistered collectors under namespace.
func NewPrometheus(namespace string) *Prometheus {
	return &Prometheus{
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fits_total",
				Help:      "Number of completed fits by status.",
			}, []string{"status"}),
		Passes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refinement_passes",
				Help:      "Refinement passes applied per fit.",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 16, 32, 64},
			}),
	}
}

// Register registers all collectors with reg.
func (p *Prometheus) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{p.Fits, p.Passes} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// ObserveFit implements Recorder.
func (p *Prometheus) ObserveFit(st status.Status, passes int) {
	p.Fits.WithLabelValues(st.String()).Inc()
	p.Passes.Observe(float64(passes))
}
