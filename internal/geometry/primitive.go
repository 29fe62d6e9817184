package geometry

import "github.com/roach88/fanosum/internal/polytope"

// Primitive scales every row of m to its primitive integer form by
// dividing out the gcd of its entries. Zero rows are left unchanged.
// The result shares no storage with m.
func Primitive(m polytope.Matrix) polytope.Matrix {
	out := make(polytope.Matrix, len(m))
	for i, row := range m {
		out[i] = PrimitiveVector(row)
	}
	return out
}

// PrimitiveVector divides v by the gcd of its entries.
func PrimitiveVector(v polytope.Vector) polytope.Vector {
	var g int64
	for _, x := range v {
		g = gcd(g, abs(x))
	}
	out := v.Clone()
	if g <= 1 {
		return out
	}
	for i := range out {
		out[i] /= g
	}
	return out
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
