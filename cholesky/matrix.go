package cholesky

import (
	"math"

	"github.com/arloliu/gaussfit/basis"
)

// State tags what the storage of a Matrix currently means.
type State uint8

const (
	// StateRaw means the matrix holds the symmetric normal-equation accumulation.
	StateRaw State = iota
	// StateFactored means the lower triangle, diagonal included, holds the
	// Cholesky factor L. The strict upper triangle still holds raw values.
	StateFactored
	// StateBroken means a factorization stopped midway; the contents are unspecified.
	StateBroken
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateFactored:
		return "factored"
	case StateBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Matrix is a basis.Size × basis.Size matrix whose storage is reused in
// place for its own Cholesky factor.
//
// The zero value is an all-zero raw matrix. A Matrix is a plain value and
// must be owned by a single fit at a time.
type Matrix struct {
	a     [basis.Size][basis.Size]float64
	state State
}

// NewMatrix returns a raw matrix initialized from rows.
func NewMatrix(rows [basis.Size][basis.Size]float64) *Matrix {
	return &Matrix{a: rows, state: StateRaw}
}

// Reset zeroes the matrix and returns it to StateRaw.
func (m *Matrix) Reset() {
	m.a = [basis.Size][basis.Size]float64{}
	m.state = StateRaw
}

// State returns the current storage state.
func (m *Matrix) State() State {
	return m.state
}

// At returns the stored element at row i, column j.
//
// After factorization, elements with i >= j are factor values.
func (m *Matrix) At(i, j int) float64 {
	return m.a[i][j]
}

// Rows returns a copy of the stored elements.
func (m *Matrix) Rows() [basis.Size][basis.Size]float64 {
	return m.a
}

// AddOuter accumulates the outer product v·vᵗ into a raw matrix.
//
// Every element is accumulated directly, so the result stays symmetric
// without a mirror pass. It panics if the matrix is not raw.
func (m *Matrix) AddOuter(v basis.Vector) {
	if m.state != StateRaw {
		panic("cholesky: AddOuter on a " + m.state.String() + " matrix")
	}

	for i := range basis.Size {
		for j := range basis.Size {
			m.a[i][j] += v[i] * v[j]
		}
	}
}

// IsSymmetric reports whether |M[i][j] - M[j][i]| <= tol for all i, j.
func (m *Matrix) IsSymmetric(tol float64) bool {
	for i := range basis.Size {
		for j := i + 1; j < basis.Size; j++ {
			if math.Abs(m.a[i][j]-m.a[j][i]) > tol {
				return false
			}
		}
	}

	return true
}

// Lower returns the factor L with zeros above the diagonal.
//
// ok is false if the matrix is not factored.
func (m *Matrix) Lower() (l [basis.Size][basis.Size]float64, ok bool) {
	if m.state != StateFactored {
		return l, false
	}

	for i := range basis.Size {
		for j := 0; j <= i; j++ {
			l[i][j] = m.a[i][j]
		}
	}

	return l, true
}
