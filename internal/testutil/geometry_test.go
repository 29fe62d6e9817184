package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

func TestCartesianProduct(t *testing.T) {
	got := CartesianProduct(Segment(), Segment())
	assert.Equal(t, polytope.Matrix{
		{1, 1, 0},
		{1, -1, 0},
		{1, 0, 1},
		{1, 0, -1},
	}, got)
}

func TestFakeGeometryIsomorphicIgnoresRowOrder(t *testing.T) {
	g := NewFakeGeometry()
	ctx := context.Background()

	a := geometry.FromInequalities(polytope.Matrix{{1, 1}, {1, -1}})
	b := geometry.FromInequalities(polytope.Matrix{{1, -1}, {1, 1}})
	c := geometry.FromInequalities(polytope.Matrix{{1, -1}, {2, 1}})

	same, err := g.Isomorphic(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = g.Isomorphic(ctx, a, c)
	require.NoError(t, err)
	assert.False(t, same)

	assert.Equal(t, 2, g.Count("isomorphic"))
}

func TestRecordMatchesFakeInvariants(t *testing.T) {
	r := Record("P1", Segment())
	assert.Equal(t, polytope.Invariants{Dimension: 1, Vertices: 2, Facets: 2, LatticePoints: 3}, r.Invariants)
	assert.NoError(t, r.Validate())
}

func TestFixedRunID(t *testing.T) {
	assert.Equal(t, "test-run-default", NewFixedRunID("").Generate())
	assert.Equal(t, "abc", NewFixedRunID("abc").Generate())
}
