package engine

import (
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

// SimplexMatrix returns the (k+1)×(d+1) coordinate matrix of the
// k-simplex living in the last k coordinates of dimension d. Column 0 is
// all ones; for j in 1..k row j has -1 at column d-k+j and row 0 has 1
// there.
func SimplexMatrix(d, k int) polytope.Matrix {
	m := make(polytope.Matrix, k+1)
	for i := range m {
		m[i] = make(polytope.Vector, d+1)
		m[i][0] = 1
	}
	for j := 1; j <= k; j++ {
		m[j][d-k+j] = -1
		m[0][d-k+j] = 1
	}
	return m
}

// TieEquations returns the k×(d+1) equation system x_0 = x_{d-k+j+1} for
// j in 0..k-1, tying each simplex coordinate to the leading coordinate.
func TieEquations(d, k int) polytope.Matrix {
	m := make(polytope.Matrix, k)
	for j := range m {
		m[j] = make(polytope.Vector, d+1)
		m[j][0] = 1
		m[j][d-k+j+1] = -1
	}
	return m
}

// SkewSimplexInequalities builds the inequality system of the skew sum of
// a source polytope (primitive facets, d-k+1 columns) with a k-simplex
// whose apex is shifted by n:
//
//	source facets padded with k zero columns
//	-e_{d-k+1}, ..., -e_d   (the last of these with column 0 set to 1)
//	n
func SkewSimplexInequalities(facets polytope.Matrix, k int, n polytope.Vector) (polytope.Matrix, error) {
	if len(facets) == 0 {
		return nil, fmt.Errorf("source has no facets")
	}
	d := facets.Cols() - 1 + k
	if len(n) != d+1 {
		return nil, fmt.Errorf("shift vector has %d entries, expected %d", len(n), d+1)
	}

	simplex := make(polytope.Matrix, k)
	for j := range simplex {
		row := make(polytope.Vector, d+1)
		row[d-k+1+j] = -1
		simplex[j] = row
	}
	simplex[k-1][0] = 1

	return polytope.Stack(facets.PadRight(k), simplex, polytope.Matrix{n}), nil
}

// BipyramidInequalities builds the skew bipyramid over facet i of a source
// polytope given by its primitive facets (d columns):
//
//	source facets padded with one zero column
//	facet i followed by 1            (top apex)
//	(1, 0, ..., 0, -1)               (bottom apex)
func BipyramidInequalities(facets polytope.Matrix, i int) (polytope.Matrix, error) {
	if i < 0 || i >= len(facets) {
		return nil, fmt.Errorf("facet index %d out of range [0,%d)", i, len(facets))
	}
	d := facets.Cols()

	top := make(polytope.Vector, d+1)
	copy(top, facets[i])
	top[d] = 1

	bottom := make(polytope.Vector, d+1)
	bottom[0] = 1
	bottom[d] = -1

	return polytope.Stack(facets.PadRight(1), polytope.Matrix{top, bottom}), nil
}
