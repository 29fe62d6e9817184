// Package polytope defines the value types shared by the catalog, the
// geometry bridge and the enumeration engine.
//
// Matrices are row-major integer matrices in homogeneous coordinates.
// Column 0 carries the constant term, so a facet row (b, a1, ..., an)
// describes the half-space b + a·x >= 0 and a point row (1, x1, ..., xn)
// describes the lattice point x.
//
// Records are immutable catalog entries. Provenance values record how a
// constructed polytope was produced; they are compared by their canonical
// JSON encoding (see MarshalCanonical) so that equal entries collapse in a
// set regardless of how they were built.
package polytope
