// Package catalog provides the SQLite-backed canonical record store.
//
// The catalog holds one row per canonical smooth Fano polytope: its id,
// its invariant tuple (dimension, vertex, facet and lattice-point counts)
// and its facet matrix stored as canonical JSON.
//
// # Reads
//
// Query returns every record matching an exact invariant filter.
// Cursor returns a forward-only, single-pass iterator honouring skip and
// limit. Cursors fetch in keyset-paginated batches, so any number of
// cursors may be open at once even though the store keeps a single
// SQLite connection.
//
// All reads order by id COLLATE BINARY, which makes shortlists and cursor
// windows deterministic for a fixed catalog.
//
// # Writes
//
// The enumeration engine never writes. WriteRecord and WriteRecords exist
// for catalog import and are idempotent on id.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package catalog
