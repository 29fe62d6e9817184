// Package bridge connects the engine to an external geometry backend.
//
// The backend is a long-running process that reads requests from its
// stdin and writes responses to its stdout, one JSON object per line:
//
//	{"id": 1, "op": "invariants", "params": {"polytope": {...}}}
//	{"id": 1, "result": {"dimension": 2, ...}}
//	{"id": 2, "error": "polytope is unbounded"}
//
// Operations are product, convex_hull, interior_lattice_points,
// invariants and isomorphic; their parameters and results are the JSON
// encodings of the geometry and polytope types. Client is the engine
// side; Serve exposes any geometry.Ops over the same protocol.
package bridge
