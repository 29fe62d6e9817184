// Package harness runs enumeration scenarios described in YAML.
//
// A scenario seeds a fresh in-memory catalog, runs one enumeration
// driver against the deterministic test geometry from package testutil,
// and checks the identified ids, their provenance or the expected
// failure. Results can also be compared against golden files:
//
//	name: free-sum-segment
//	description: the square is the free sum of two segments
//	catalog:
//	  - {id: P1, facets: [[1, 1], [1, -1]]}
//	  - {id: P2, facets: [[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]]}
//	run:
//	  driver: freesum
//	  dimension: 2
//	  options: {splitinfo: true}
//	expect:
//	  provenance:
//	    P2: ["(P1, P1)"]
//
// The test geometry identifies polytopes by their inequality rows, so
// catalog facets must be written exactly as the constructions produce
// them, up to row order. Skew simplex sums take their apex shifts from
// geometry.shifts instead of computing lattice points.
package harness
