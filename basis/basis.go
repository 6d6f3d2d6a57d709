// Package basis evaluates the fixed monomial basis used by the fitting engine.
//
// The basis has exactly five terms, 1, x, x², x³ and x⁴, so every fitted model
// is a quartic polynomial:
//
//	y = c0 + c1*x + c2*x² + c3*x³ + c4*x⁴
package basis

// Size is the number of basis terms and the length of every coefficient vector.
const Size = 5

// Vector holds one value per basis term.
//
// It is used both for evaluated basis values and for coefficient vectors.
type Vector [Size]float64

// Evaluate returns the basis vector [1, x, x², x³, x⁴] for x.
//
// The x⁴ term is computed by squaring the x² term rather than multiplying
// x four times.
func Evaluate(x float64) Vector {
	var v Vector
	v[0] = 1
	v[1] = x
	v[2] = x * x
	v[3] = x * x * x
	v[4] = v[2] * v[2]

	return v
}

// Dot returns the inner product of v and w.
func (v Vector) Dot(w Vector) float64 {
	sum := 0.0
	for i := range Size {
		sum += v[i] * w[i]
	}

	return sum
}

// Add adds w to v element-wise in place.
func (v *Vector) Add(w Vector) {
	for i := range Size {
		v[i] += w[i]
	}
}

// Slice returns a copy of v as a slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Size)
	copy(out, v[:])

	return out
}
