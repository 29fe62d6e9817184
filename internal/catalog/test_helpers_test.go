package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/polytope"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord builds a record of dimension dim whose facet matrix is
// the first n rows of a diagonal pattern. Only the shape matters here.
func createTestRecord(id string, dim, n int) polytope.Record {
	facets := make(polytope.Matrix, n)
	for i := range facets {
		row := make(polytope.Vector, dim+1)
		row[0] = 1
		row[1+i%dim] = -1
		facets[i] = row
	}
	return polytope.Record{
		ID:         id,
		Invariants: polytope.Invariants{Dimension: dim, Vertices: n, Facets: n, LatticePoints: n + 1},
		Facets:     facets,
	}
}

func seed(t *testing.T, s *Store, records ...polytope.Record) {
	t.Helper()
	_, err := s.WriteRecords(context.Background(), records)
	require.NoError(t, err)
}

func drain(t *testing.T, c Cursor) []string {
	t.Helper()
	defer c.Close()
	var ids []string
	for c.Next() {
		ids = append(ids, c.Record().ID)
	}
	require.NoError(t, c.Err())
	return ids
}
