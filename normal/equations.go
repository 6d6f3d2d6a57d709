// Package normal assembles the least-squares normal equations of the quartic basis.
package normal

import (
	"github.com/arloliu/gaussfit/basis"
	"github.com/arloliu/gaussfit/cholesky"
	"github.com/arloliu/gaussfit/status"
)

// Equations is the system M·c = B for one fit.
//
// M is the moment matrix Σ b(x)·b(x)ᵗ and B the moment vector Σ b(x)·y over
// all samples. Solving the system in place turns M into its Cholesky factor
// and B into the coefficient vector.
type Equations struct {
	M cholesky.Matrix
	B basis.Vector
}

// Assemble rebuilds the equations from the first count samples.
//
// It returns status.InsufficientSamples without touching e when count is
// smaller than basis.Size. Otherwise e is zeroed and fully recomputed; no
// state carries over from a previous call. xs and ys must hold at least
// count elements.
func (e *Equations) Assemble(xs, ys []float64, count int) status.Status {
	if count < basis.Size {
		return status.InsufficientSamples
	}

	e.M.Reset()
	e.B = basis.Vector{}

	for k := range count {
		b := basis.Evaluate(xs[k])
		e.M.AddOuter(b)
		for i := range basis.Size {
			e.B[i] += b[i] * ys[k]
		}
	}

	return status.OK
}
