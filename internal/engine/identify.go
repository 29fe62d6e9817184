package engine

import (
	"context"
	"fmt"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/geometry"
)

// Identifier resolves constructed polytopes to canonical catalog ids.
// It never writes to the catalog.
type Identifier struct {
	store catalog.RecordStore
	geom  geometry.Ops
}

// NewIdentifier creates an Identifier over the given catalog and geometry
// backend.
func NewIdentifier(store catalog.RecordStore, geom geometry.Ops) *Identifier {
	return &Identifier{store: store, geom: geom}
}

// Identify returns the id of the catalog record isomorphic to p.
//
// The catalog is first narrowed to records sharing p's invariant tuple;
// the exact isomorphism test then runs on that shortlist in catalog order
// and the first match wins. Returns *NotFoundError if nothing matches.
func (idf *Identifier) Identify(ctx context.Context, p *geometry.Polytope) (string, error) {
	inv, err := idf.geom.Invariants(ctx, p)
	if err != nil {
		return "", fmt.Errorf("compute invariants: %w", err)
	}

	shortlist, err := idf.store.Query(ctx, catalog.ByInvariants(inv))
	if err != nil {
		return "", fmt.Errorf("shortlist %s: %w", inv, err)
	}

	for _, rec := range shortlist {
		same, err := idf.geom.Isomorphic(ctx, p, geometry.FromRecord(rec))
		if err != nil {
			return "", fmt.Errorf("isomorphism test against %s: %w", rec.ID, err)
		}
		if same {
			return rec.ID, nil
		}
	}

	return "", &NotFoundError{Invariants: inv, Shortlisted: len(shortlist)}
}
