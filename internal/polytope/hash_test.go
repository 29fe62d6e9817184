package polytope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashRecord() Record {
	return Record{
		ID:         "P1",
		Invariants: Invariants{Dimension: 1, Vertices: 2, Facets: 2, LatticePoints: 3},
		Facets:     Matrix{{1, 1}, {1, -1}},
	}
}

func TestContentHash_Deterministic(t *testing.T) {
	h1, err := hashRecord().ContentHash()
	require.NoError(t, err)
	h2, err := hashRecord().ContentHash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestContentHash_NilAndEmptyVerticesAgree(t *testing.T) {
	r := hashRecord()
	withNil, err := r.ContentHash()
	require.NoError(t, err)

	r.Vertices = Matrix{}
	withEmpty, err := r.ContentHash()
	require.NoError(t, err)

	assert.Equal(t, withNil, withEmpty)
}

func TestContentHash_SensitiveToContent(t *testing.T) {
	base, err := hashRecord().ContentHash()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"id", func(r *Record) { r.ID = "P2" }},
		{"invariants", func(r *Record) { r.Invariants.LatticePoints = 4 }},
		{"facet entry", func(r *Record) { r.Facets = Matrix{{1, 1}, {2, -1}} }},
		{"facet order", func(r *Record) { r.Facets = Matrix{{1, -1}, {1, 1}} }},
		{"vertices", func(r *Record) { r.Vertices = Matrix{{1, 1}, {1, -1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := hashRecord()
			tt.mutate(&r)
			h, err := r.ContentHash()
			require.NoError(t, err)
			assert.NotEqual(t, base, h)
		})
	}
}

func TestHashWithDomain_Separation(t *testing.T) {
	data := []byte(`{"id":"P1"}`)
	assert.NotEqual(t, hashWithDomain("a", data), hashWithDomain("b", data))
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}
