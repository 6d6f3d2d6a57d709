package regression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/gaussfit/basis"
)

// ModelType represents the type of fitted model.
type ModelType int

const (
	// ModelTypeQuartic is y = c0 + c1*x + c2*x² + c3*x³ + c4*x⁴.
	ModelTypeQuartic ModelType = iota
	// ModelTypeScaledQuartic is the quartic evaluated at u = (x - center) / halfWidth.
	ModelTypeScaledQuartic
)

var modelTypeNames = map[ModelType]string{
	ModelTypeQuartic:       "quartic",
	ModelTypeScaledQuartic: "scaled_quartic",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	name = strings.ToLower(name)
	for mt, n := range modelTypeNames {
		if n == name {
			return mt
		}
	}

	return ModelType(-1)
}

// Estimator evaluates a fitted model.
type Estimator interface {
	// Estimate evaluates the model at x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients replaces the coefficients of the model.
	//
	// A quartic takes 5 coefficients c0..c4. A scaled quartic takes 7:
	// c0..c4 followed by center and halfWidth.
	SetCoefficients(coeffs []float64) error
}

// QuarticEstimator evaluates c0 + c1*x + c2*x² + c3*x³ + c4*x⁴ with
// Horner's scheme.
type QuarticEstimator struct {
	c basis.Vector
}

// NewQuarticEstimator creates a quartic estimator.
func NewQuarticEstimator(c basis.Vector) *QuarticEstimator {
	return &QuarticEstimator{c: c}
}

// Estimate implements Estimator.
func (q *QuarticEstimator) Estimate(x float64) float64 {
	return horner(q.c, x)
}

// Type implements Estimator.
func (q *QuarticEstimator) Type() ModelType {
	return ModelTypeQuartic
}

// Coefficients returns [c0, c1, c2, c3, c4].
func (q *QuarticEstimator) Coefficients() []float64 {
	return q.c.Slice()
}

// SetCoefficients implements Estimator.
func (q *QuarticEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != basis.Size {
		return fmt.Errorf("quartic model expects exactly %d coefficients, got %d", basis.Size, len(coeffs))
	}
	copy(q.c[:], coeffs)

	return nil
}

// ScaledQuarticEstimator evaluates a quartic fitted on x values mapped
// onto [-1, 1].
type ScaledQuarticEstimator struct {
	c                 basis.Vector
	center, halfWidth float64
}

// NewScaledQuarticEstimator creates an estimator for coefficients fitted
// in the rescaled domain u = (x - center) / halfWidth.
func NewScaledQuarticEstimator(c basis.Vector, center, halfWidth float64) *ScaledQuarticEstimator {
	return &ScaledQuarticEstimator{c: c, center: center, halfWidth: halfWidth}
}

// Estimate implements Estimator.
func (s *ScaledQuarticEstimator) Estimate(x float64) float64 {
	return horner(s.c, (x-s.center)/s.halfWidth)
}

// Type implements Estimator.
func (s *ScaledQuarticEstimator) Type() ModelType {
	return ModelTypeScaledQuartic
}

// Coefficients returns [c0, c1, c2, c3, c4, center, halfWidth].
func (s *ScaledQuarticEstimator) Coefficients() []float64 {
	return append(s.c.Slice(), s.center, s.halfWidth)
}

// SetCoefficients implements Estimator.
func (s *ScaledQuarticEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != basis.Size+2 {
		return fmt.Errorf("scaled quartic model expects exactly %d coefficients, got %d", basis.Size+2, len(coeffs))
	}
	if coeffs[basis.Size+1] == 0 {
		return fmt.Errorf("scaled quartic model needs a non-zero half width")
	}
	copy(s.c[:], coeffs[:basis.Size])
	s.center = coeffs[basis.Size]
	s.halfWidth = coeffs[basis.Size+1]

	return nil
}

func horner(c basis.Vector, x float64) float64 {
	y := c[basis.Size-1]
	for i := basis.Size - 2; i >= 0; i-- {
		y = y*x + c[i]
	}

	return y
}

func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeQuartic:
		return &QuarticEstimator{}
	case ModelTypeScaledQuartic:
		return &ScaledQuarticEstimator{halfWidth: 1}
	default:
		return nil
	}
}

// NewEstimator creates an estimator by model name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive), "quartic" or "scaled_quartic"
//   - coeffs: The model coefficients, see Estimator.SetCoefficients
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: Unknown model name or wrong coefficient count
//
// Example:
//
//	estimator, err := NewEstimator("quartic", []float64{1, 0, -2, 0, 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := estimator.Estimate(0.5)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType := ModelTypeFromString(name)
	estimator := newEmptyEstimator(modelType)
	if estimator == nil {
		supportedTypes := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supportedTypes = append(supportedTypes, n)
		}
		slices.Sort(supportedTypes)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supportedTypes, ", "))
	}

	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
