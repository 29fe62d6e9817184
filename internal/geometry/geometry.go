// Package geometry declares the polytope operations the enumeration engine
// consumes. The operations themselves (hulls, lattice points, isomorphism)
// are provided by an external backend; see package bridge.
package geometry

import (
	"context"

	"github.com/roach88/fanosum/internal/polytope"
)

// Polytope is a constructed, not yet identified polytope given by an
// H-description. Equations may be empty.
type Polytope struct {
	Inequalities polytope.Matrix `json:"inequalities"`
	Equations    polytope.Matrix `json:"equations,omitempty"`
}

// FromInequalities builds a polytope from an inequality system.
func FromInequalities(ineq polytope.Matrix) *Polytope {
	return &Polytope{Inequalities: ineq.Clone()}
}

// FromInequalitiesAndEquations builds a polytope from an inequality system
// intersected with an equation system.
func FromInequalitiesAndEquations(ineq, eq polytope.Matrix) *Polytope {
	return &Polytope{Inequalities: ineq.Clone(), Equations: eq.Clone()}
}

// FromRecord returns the polytope described by a catalog record's facets.
func FromRecord(r polytope.Record) *Polytope {
	return FromInequalities(r.Facets)
}

// Hull is the result of a convex hull computation over a point set.
type Hull struct {
	// Facets holds one inequality per facet of the hull.
	Facets polytope.Matrix `json:"facets"`

	// Incidence[v][f] reports whether vertex v lies on facet f. Vertices
	// are numbered in the order they appear in the input point set;
	// input points that are not vertices have an all-false row.
	Incidence [][]bool `json:"incidence"`
}

// FacetsAvoiding returns the facets not incident to vertex v, in hull
// order. An out-of-range vertex yields every facet.
func (h Hull) FacetsAvoiding(v int) polytope.Matrix {
	out := make(polytope.Matrix, 0, len(h.Facets))
	for f, row := range h.Facets {
		if v >= 0 && v < len(h.Incidence) && f < len(h.Incidence[v]) && h.Incidence[v][f] {
			continue
		}
		out = append(out, row.Clone())
	}
	return out
}

// Ops is the set of blocking geometry operations the engine calls.
// Implementations must be safe for sequential use; the engine never calls
// them concurrently.
type Ops interface {
	// Product returns the free sum of two catalog records.
	Product(ctx context.Context, a, b polytope.Record) (*Polytope, error)

	// ConvexHull computes the hull of a homogeneous point set.
	ConvexHull(ctx context.Context, points polytope.Matrix) (Hull, error)

	// InteriorLatticePoints lists the lattice points strictly inside p in
	// homogeneous coordinates.
	InteriorLatticePoints(ctx context.Context, p *Polytope) ([]polytope.Vector, error)

	// Invariants computes the cheap signature used for catalog lookups.
	Invariants(ctx context.Context, p *Polytope) (polytope.Invariants, error)

	// Isomorphic reports whether a and b are lattice isomorphic.
	Isomorphic(ctx context.Context, a, b *Polytope) (bool, error)
}
