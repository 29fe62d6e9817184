package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
	"github.com/roach88/fanosum/internal/testutil"
)

// square is the product of two segments, i.e. the 2-dimensional catalog
// entry the free sum scenario expects.
var square = polytope.Matrix{{1, 1, 0}, {1, -1, 0}, {1, 0, 1}, {1, 0, -1}}

func testEnv(t *testing.T, geom *testutil.FakeGeometry, records ...polytope.Record) Env {
	t.Helper()
	return Env{Store: testutil.NewCatalog(t, records...), Geometry: geom}
}

// annotated flattens an Annotated result set to id -> provenance strings.
func annotated(rs *ResultSet) map[string][]string {
	out := make(map[string][]string, rs.Len())
	for _, id := range rs.IDs() {
		var ps []string
		for _, p := range rs.Provenance(id) {
			ps = append(ps, p.String())
		}
		out[id] = ps
	}
	return out
}

// apexHull is a scripted hull with three facets, only the first of which
// passes through vertex 0.
func apexHull(points polytope.Matrix) (geometry.Hull, error) {
	cols := points.Cols()
	facets := make(polytope.Matrix, 3)
	for i := range facets {
		facets[i] = make(polytope.Vector, cols)
		facets[i][0] = int64(i + 1)
	}
	incidence := make([][]bool, len(points))
	for v := range incidence {
		incidence[v] = []bool{v == 0, v != 0, v != 0}
	}
	return geometry.Hull{Facets: facets, Incidence: incidence}, nil
}

// assertPaginationCoverage checks that {skip:0, amount:k} ∪ {skip:k}
// reproduces the unpaginated result for every k in 0..n.
func assertPaginationCoverage(t *testing.T, n int, call func(opts Options) (*ResultSet, error)) {
	t.Helper()

	full, err := call(Options{SplitInfo: true})
	require.NoError(t, err)

	for k := 0; k <= n; k++ {
		head, err := call(Options{SplitInfo: true, Skip: Int(0), Amount: Int(k)})
		require.NoError(t, err)
		tail, err := call(Options{SplitInfo: true, Skip: Int(k)})
		require.NoError(t, err)

		require.NoError(t, head.Merge(tail))
		require.Equal(t, annotated(full), annotated(head), "k=%d", k)
	}
}
