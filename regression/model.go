package regression

import (
	"fmt"

	"github.com/arloliu/gaussfit/status"
)

// Model is a fitted quartic together with its quality metrics.
type Model struct {
	// Type is the model type.
	Type ModelType
	// Coefficients holds the estimator coefficients, see Estimator.Coefficients.
	Coefficients []float64
	// RSquared is the coefficient of determination.
	RSquared float64
	// RMSE is the root mean square error.
	RMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator is the concrete estimator implementation.
	Estimator Estimator

	// Status is the engine outcome. Models are only built for status.OK
	// and status.NoSolutionFound.
	Status status.Status
	// Residual is the sum of squared residuals reached by the fit.
	Residual float64
	// Passes is the number of refinement passes of the fit.
	Passes int
	// Samples is the number of samples fitted.
	Samples int
	// Fingerprint identifies the sample set, see sample.Set.Fingerprint.
	Fingerprint uint64
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}
