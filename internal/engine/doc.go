// Package engine identifies constructed polytopes against the catalog and
// drives the construction enumerations.
//
// ARCHITECTURE:
//
// Identification:
// Identifier computes a candidate's invariant tuple, asks the catalog for
// every record with exactly that tuple, and runs the exact isomorphism
// test on the shortlist in catalog order. The first match wins; an empty
// or exhausted shortlist is a NotFoundError.
//
// Enumeration:
// Each driver opens one or two cursors over the catalog, turns every
// source record into a list of candidates (free sums, skew simplex sums,
// skew bipyramids), identifies each candidate, and folds the identified
// ids into a ResultSet owned by the call.
//
//   - FreeSum:            products of records of dimensions n and d-n
//   - SkewSimplexKSum:    k-simplices attached to records of dimension d-k
//   - AllSkewSimplexSums: SkewSimplexKSum for every k in 1..d, merged
//   - SkewBipyramids:     one skew bipyramid per facet of each d-1 record
//
// Pagination (skip/amount) applies to exactly one cursor per driver and is
// a caller-side checkpoint: to resume an interrupted batch, call again
// with the skip reached so far.
//
// CRITICAL PATTERNS:
//
// Fail-fast:
// A candidate that cannot be identified aborts the whole call. No partial
// ResultSet is returned.
//
// Determinism:
// Single goroutine. Cursors and shortlists are ordered by id, so a fixed
// catalog and fixed options always give the same ResultSet.
package engine
