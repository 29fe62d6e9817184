package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

var _ geometry.Ops = (*FakeGeometry)(nil)

// FakeGeometry is a deterministic geometry.Ops for tests.
//
// It treats two polytopes as isomorphic when their inequality rows are
// equal as multisets, which makes identification insensitive to row order
// but nothing else. Invariants are derived from the matrix shape (see
// FakeInvariants). Products are real Cartesian products of H-descriptions.
//
// ConvexHull and InteriorLatticePoints have no sensible generic fake; set
// HullFunc and LatticePointsFunc to script them. Every call is recorded.
type FakeGeometry struct {
	HullFunc          func(points polytope.Matrix) (geometry.Hull, error)
	LatticePointsFunc func(p *geometry.Polytope) ([]polytope.Vector, error)

	// ProductErr, when set, is returned by every Product call.
	ProductErr error

	Calls   []string
	Hulls   []polytope.Matrix
	Regions []*geometry.Polytope
}

// NewFakeGeometry creates a FakeGeometry with no scripted hulls.
func NewFakeGeometry() *FakeGeometry {
	return &FakeGeometry{}
}

func (g *FakeGeometry) record(op string) {
	g.Calls = append(g.Calls, op)
}

// Product returns the Cartesian product of a and b: a's facets padded on
// the right, b's facets shifted past a's coordinates.
func (g *FakeGeometry) Product(_ context.Context, a, b polytope.Record) (*geometry.Polytope, error) {
	g.record("product " + a.ID + " " + b.ID)
	if g.ProductErr != nil {
		return nil, g.ProductErr
	}
	return geometry.FromInequalities(CartesianProduct(a.Facets, b.Facets)), nil
}

func (g *FakeGeometry) ConvexHull(_ context.Context, points polytope.Matrix) (geometry.Hull, error) {
	g.record("hull")
	g.Hulls = append(g.Hulls, points.Clone())
	if g.HullFunc == nil {
		return geometry.Hull{}, fmt.Errorf("fake geometry: no HullFunc configured")
	}
	return g.HullFunc(points)
}

func (g *FakeGeometry) InteriorLatticePoints(_ context.Context, p *geometry.Polytope) ([]polytope.Vector, error) {
	g.record("lattice points")
	g.Regions = append(g.Regions, p)
	if g.LatticePointsFunc == nil {
		return nil, nil
	}
	return g.LatticePointsFunc(p)
}

func (g *FakeGeometry) Invariants(_ context.Context, p *geometry.Polytope) (polytope.Invariants, error) {
	g.record("invariants")
	return FakeInvariants(p.Inequalities), nil
}

func (g *FakeGeometry) Isomorphic(_ context.Context, a, b *geometry.Polytope) (bool, error) {
	g.record("isomorphic")
	return sameRows(a.Inequalities, b.Inequalities), nil
}

// Count returns how many recorded calls start with op.
func (g *FakeGeometry) Count(op string) int {
	n := 0
	for _, c := range g.Calls {
		if len(c) >= len(op) && c[:len(op)] == op {
			n++
		}
	}
	return n
}

// FakeInvariants derives the invariant tuple FakeGeometry reports for an
// inequality matrix: dimension from the column count, facets and vertices
// from the row count, lattice points as rows+1.
func FakeInvariants(ineq polytope.Matrix) polytope.Invariants {
	return polytope.Invariants{
		Dimension:     ineq.Cols() - 1,
		Vertices:      ineq.Rows(),
		Facets:        ineq.Rows(),
		LatticePoints: ineq.Rows() + 1,
	}
}

// CartesianProduct returns the H-description of the product of the
// polytopes with facet matrices a and b.
func CartesianProduct(a, b polytope.Matrix) polytope.Matrix {
	da, db := a.Cols()-1, b.Cols()-1
	out := make(polytope.Matrix, 0, len(a)+len(b))
	for _, row := range a {
		r := make(polytope.Vector, da+db+1)
		copy(r, row)
		out = append(out, r)
	}
	for _, row := range b {
		r := make(polytope.Vector, da+db+1)
		r[0] = row[0]
		copy(r[da+1:], row[1:])
		out = append(out, r)
	}
	return out
}

func sameRows(a, b polytope.Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := sortedRows(a), sortedRows(b)
	for i := range sa {
		if !sa[i].Equal(sb[i]) {
			return false
		}
	}
	return true
}

func sortedRows(m polytope.Matrix) polytope.Matrix {
	out := m.Clone()
	sort.Slice(out, func(i, j int) bool {
		return slices.Compare(out[i], out[j]) < 0
	})
	return out
}
