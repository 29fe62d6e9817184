package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/polytope"
)

func TestSimplexMatrix(t *testing.T) {
	tests := []struct {
		d, k int
		want polytope.Matrix
	}{
		{2, 2, polytope.Matrix{{1, 1, 1}, {1, -1, 0}, {1, 0, -1}}},
		{2, 1, polytope.Matrix{{1, 0, 1}, {1, 0, -1}}},
		{3, 1, polytope.Matrix{{1, 0, 0, 1}, {1, 0, 0, -1}}},
		{4, 2, polytope.Matrix{{1, 0, 0, 1, 1}, {1, 0, 0, -1, 0}, {1, 0, 0, 0, -1}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimplexMatrix(tt.d, tt.k), "d=%d k=%d", tt.d, tt.k)
	}
}

func TestTieEquations(t *testing.T) {
	assert.Equal(t, polytope.Matrix{{1, 0, 0, -1}}, TieEquations(3, 1))
	assert.Equal(t, polytope.Matrix{{1, 0, 0, -1, 0}, {1, 0, 0, 0, -1}}, TieEquations(4, 2))
	assert.Equal(t, polytope.Matrix{{1, -1, 0}, {1, 0, -1}}, TieEquations(2, 2))
}

func TestSkewSimplexInequalities(t *testing.T) {
	got, err := SkewSimplexInequalities(polytope.Matrix{{1, 1}, {1, -1}}, 1, polytope.Vector{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, polytope.Matrix{
		{1, 1, 0},
		{1, -1, 0},
		{1, 0, -1},
		{1, 0, 1},
	}, got)

	got, err = SkewSimplexInequalities(polytope.Matrix{{1, 1}, {1, -1}}, 2, polytope.Vector{2, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, polytope.Matrix{
		{1, 1, 0, 0},
		{1, -1, 0, 0},
		{0, 0, -1, 0},
		{1, 0, 0, -1},
		{2, 1, 1, 1},
	}, got)
}

func TestSkewSimplexInequalities_Errors(t *testing.T) {
	_, err := SkewSimplexInequalities(nil, 1, polytope.Vector{1, 0})
	assert.Error(t, err)

	_, err = SkewSimplexInequalities(polytope.Matrix{{1, 1}, {1, -1}}, 1, polytope.Vector{1, 0})
	assert.ErrorContains(t, err, "expected 3")
}

func TestBipyramidInequalities(t *testing.T) {
	facets := polytope.Matrix{{1, 1}, {1, -1}}

	got, err := BipyramidInequalities(facets, 0)
	require.NoError(t, err)
	assert.Equal(t, polytope.Matrix{
		{1, 1, 0},
		{1, -1, 0},
		{1, 1, 1},
		{1, 0, -1},
	}, got)

	got, err = BipyramidInequalities(facets, 1)
	require.NoError(t, err)
	assert.Equal(t, polytope.Vector{1, -1, 1}, got[2])

	// source untouched
	assert.Equal(t, polytope.Matrix{{1, 1}, {1, -1}}, facets)

	_, err = BipyramidInequalities(facets, 2)
	assert.Error(t, err)
}
