package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/polytope"
)

// Record builds a catalog record whose invariants agree with
// FakeInvariants, so FakeGeometry can identify candidates against it.
func Record(id string, facets polytope.Matrix) polytope.Record {
	return polytope.Record{
		ID:         id,
		Invariants: FakeInvariants(facets),
		Facets:     facets,
	}
}

// NewCatalog opens a catalog in a temp directory seeded with records.
func NewCatalog(t *testing.T, records ...polytope.Record) *catalog.Store {
	t.Helper()
	s, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("catalog.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if _, err := s.WriteRecords(context.Background(), records); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return s
}

// Segment is the 1-dimensional smooth Fano polytope [-1, 1].
func Segment() polytope.Matrix {
	return polytope.Matrix{{1, 1}, {1, -1}}
}
