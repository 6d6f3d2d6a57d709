// Package cholesky solves symmetric positive-definite 5×5 systems in place.
//
// The solver works in two modes. ModeFactorSolve checks the matrix for
// symmetry, overwrites its lower triangle with the Cholesky factor L and
// solves L·Lᵗ·x = b. ModeSolve reuses a factor produced earlier on the same
// matrix and only runs the forward and back substitutions.
//
// Every division by a diagonal element goes through a guard.Divisor, and
// the guarded value is written back to the diagonal.
//
// Failures are reported as status codes:
//
//	status.NotSymmetric         some |M[i][j]| - |M[j][i]| > Threshold
//	status.SingularMatrix       a pivot with |s| < Threshold
//	status.NotPositiveDefinite  a negative pivot
//	status.InvalidMode          unknown mode or matrix in the wrong state
package cholesky

import (
	"math"

	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/guard"
	"github.com/arloliu/gaussfit/status"
)

// Threshold is the fixed tolerance of the symmetry and pivot checks.
const Threshold = 0.001

// Mode selects how much work Solve performs.
type Mode int

const (
	// ModeFactorSolve checks, factors and solves.
	ModeFactorSolve Mode = 1
	// ModeSolve reuses an existing factor and only substitutes.
	ModeSolve Mode = 3
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFactorSolve:
		return "factor_solve"
	case ModeSolve:
		return "solve"
	default:
		return "invalid"
	}
}

// Solver runs factorizations and substitutions with a fixed divisor guard.
//
// A Solver holds no mutable state and may be shared between goroutines;
// the matrices it operates on may not.
type Solver struct {
	guard guard.Divisor
}

// NewSolver creates a solver using g for every diagonal division.
func NewSolver(g guard.Divisor) Solver {
	return Solver{guard: g}
}

// Guard returns the divisor configuration of the solver.
func (s Solver) Guard() guard.Divisor {
	return s.guard
}

// Solve solves m·x = rhs and stores x in rhs.
//
// In ModeFactorSolve the matrix must be raw and ends up factored on
// success. In ModeSolve the matrix must already be factored and is left
// unchanged except for guarded diagonal values. rhs is only modified when
// the returned status is OK.
func (s Solver) Solve(m *Matrix, rhs *basis.Vector, mode Mode) status.Status {
	switch mode {
	case ModeFactorSolve:
		if m.state != StateRaw {
			return status.InvalidMode
		}
		if st := s.factor(m); st != status.OK {
			return st
		}
	case ModeSolve:
		if m.state != StateFactored {
			return status.InvalidMode
		}
	default:
		return status.InvalidMode
	}

	s.substitute(m, rhs)

	return status.OK
}

// Factor runs the symmetry check and factorization without solving.
func (s Solver) Factor(m *Matrix) status.Status {
	if m.state != StateRaw {
		return status.InvalidMode
	}

	return s.factor(m)
}

func (s Solver) factor(m *Matrix) status.Status {
	const n = basis.Size
	a := &m.a

	for i := range n {
		for j := i + 1; j < n; j++ {
			if math.Abs(a[i][j])-math.Abs(a[j][i]) > Threshold {
				return status.NotSymmetric
			}
		}
	}

	// Column i of L is written below the diagonal while the raw values are
	// still read from the upper triangle.
	for i := range n {
		p := a[i][i]
		for k := range i {
			p -= a[i][k] * a[i][k]
		}
		if math.Abs(p) < Threshold {
			m.state = StateBroken
			return status.SingularMatrix
		}
		if p < 0 {
			m.state = StateBroken
			return status.NotPositiveDefinite
		}
		a[i][i] = math.Sqrt(p)

		for j := i + 1; j < n; j++ {
			v := a[i][j]
			for k := range i {
				v -= a[i][k] * a[j][k]
			}
			a[i][i] = s.guard.Check(a[i][i])
			a[j][i] = v / a[i][i]
		}
	}
	m.state = StateFactored

	return status.OK
}

// substitute solves L·z = rhs, then Lᵗ·x = z, in place.
func (s Solver) substitute(m *Matrix, rhs *basis.Vector) {
	const n = basis.Size
	a := &m.a

	for i := range n {
		v := rhs[i]
		for k := range i {
			v -= a[i][k] * rhs[k]
		}
		a[i][i] = s.guard.Check(a[i][i])
		rhs[i] = v / a[i][i]
	}

	for j := n - 1; j >= 0; j-- {
		v := rhs[j]
		for k := j + 1; k < n; k++ {
			v -= a[k][j] * rhs[k]
		}
		a[j][j] = s.guard.Check(a[j][j])
		rhs[j] = v / a[j][j]
	}
}
