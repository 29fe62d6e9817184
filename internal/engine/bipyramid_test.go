package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/polytope"
	"github.com/roach88/fanosum/internal/testutil"
)

var (
	bipyramidTop    = polytope.Matrix{{1, 1, 0}, {1, -1, 0}, {1, 1, 1}, {1, 0, -1}}
	bipyramidBottom = polytope.Matrix{{1, 1, 0}, {1, -1, 0}, {1, -1, 1}, {1, 0, -1}}
)

func TestSkewBipyramids(t *testing.T) {
	geom := testutil.NewFakeGeometry()
	env := testEnv(t, geom,
		testutil.Record("P1", testutil.Segment()),
		testutil.Record("X0", bipyramidTop),
		testutil.Record("X1", bipyramidBottom),
	)

	rs, err := SkewBipyramids(context.Background(), env, 2, Options{SplitInfo: true})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"X0": {"(P1, 0)"},
		"X1": {"(P1, 1)"},
	}, annotated(rs))

	simple, err := SkewBipyramids(context.Background(), env, 2, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"X0", "X1"}, simple.IDs())
}

func TestSkewBipyramids_SameIDAccumulatesProvenance(t *testing.T) {
	twin := polytope.Matrix{{1, -1}, {1, -1}}
	env := testEnv(t, testutil.NewFakeGeometry(),
		testutil.Record("C", twin),
		testutil.Record("X", polytope.Matrix{{1, -1, 0}, {1, -1, 0}, {1, -1, 1}, {1, 0, -1}}),
	)

	rs, err := SkewBipyramids(context.Background(), env, 2, Options{SplitInfo: true})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"X": {"(C, 0)", "(C, 1)"}}, annotated(rs))
}

func TestSkewBipyramids_PrimitiveFacets(t *testing.T) {
	env := testEnv(t, testutil.NewFakeGeometry(),
		testutil.Record("P1", polytope.Matrix{{2, 2}, {5, -5}}),
		testutil.Record("X0", bipyramidTop),
		testutil.Record("X1", bipyramidBottom),
	)

	rs, err := SkewBipyramids(context.Background(), env, 2, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"X0", "X1"}, rs.IDs())
}

func TestSkewBipyramids_PaginationCoverage(t *testing.T) {
	env := testEnv(t, testutil.NewFakeGeometry(),
		testutil.Record("P1", testutil.Segment()),
		testutil.Record("P1b", polytope.Matrix{{1, -1}, {1, 1}}),
		testutil.Record("P1c", polytope.Matrix{{3, 3}, {1, -1}}),
		testutil.Record("X0", bipyramidTop),
		testutil.Record("X1", bipyramidBottom),
	)

	assertPaginationCoverage(t, 3, func(opts Options) (*ResultSet, error) {
		return SkewBipyramids(context.Background(), env, 2, opts)
	})
}

func TestSkewBipyramids_NotFoundAborts(t *testing.T) {
	env := testEnv(t, testutil.NewFakeGeometry(),
		testutil.Record("P1", testutil.Segment()),
		testutil.Record("X0", bipyramidTop),
	)

	rs, err := SkewBipyramids(context.Background(), env, 2, Options{})
	require.Error(t, err)
	assert.Nil(t, rs)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "(P1, 1)")
}

func TestSkewBipyramids_ConfigurationErrors(t *testing.T) {
	for _, d := range []int{0, 1, 10} {
		rs, err := SkewBipyramids(context.Background(), Env{}, d, Options{})
		assert.Nil(t, rs)
		assert.True(t, IsConfigurationError(err), "d=%d", d)
	}
}
