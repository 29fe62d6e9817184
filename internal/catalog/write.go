package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

// ErrConflict is returned when a record's id is already present with
// different content.
var ErrConflict = errors.New("record already present with different content")

// WriteRecord inserts a canonical record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency; it reports whether a
// row was actually inserted. Rewriting an id with different content fails
// with ErrConflict.
func (s *Store) WriteRecord(ctx context.Context, r polytope.Record) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, fmt.Errorf("write record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write record %s: begin tx: %w", r.ID, err)
	}
	defer tx.Rollback() // No-op if committed

	inserted, err := insertRecord(ctx, tx, r)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write record %s: commit: %w", r.ID, err)
	}
	return inserted, nil
}

// WriteRecords inserts records in a single transaction and returns how many
// were new. Either every record is validated and written or none is.
func (s *Store) WriteRecords(ctx context.Context, records []polytope.Record) (int, error) {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("write records: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write records: begin: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, r := range records {
		ok, err := insertRecord(ctx, tx, r)
		if err != nil {
			return 0, err
		}
		if ok {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write records: commit: %w", err)
	}
	return inserted, nil
}

// insertRecord inserts r or, if its id is taken, compares content hashes
// with the stored row.
func insertRecord(ctx context.Context, tx *sql.Tx, r polytope.Record) (bool, error) {
	hash, err := r.ContentHash()
	if err != nil {
		return false, fmt.Errorf("write record %s: %w", r.ID, err)
	}
	facetsJSON, err := marshalMatrix(r.Facets)
	if err != nil {
		return false, fmt.Errorf("write record %s: %w", r.ID, err)
	}
	verticesJSON, err := marshalMatrix(r.Vertices)
	if err != nil {
		return false, fmt.Errorf("write record %s: %w", r.ID, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO records
		(id, dimension, n_vertices, n_facets, n_lattice_points, facets, vertices, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Invariants.Dimension,
		r.Invariants.Vertices,
		r.Invariants.Facets,
		r.Invariants.LatticePoints,
		facetsJSON,
		verticesJSON,
		hash,
	)
	if err != nil {
		return false, fmt.Errorf("write record %s: insert: %w", r.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write record %s: rows affected: %w", r.ID, err)
	}
	if n > 0 {
		return true, nil
	}

	// Conflict - the id exists, check that it holds the same content
	var existing string
	err = tx.QueryRowContext(ctx, `SELECT content_hash FROM records WHERE id = ?`, r.ID).Scan(&existing)
	if err != nil {
		return false, fmt.Errorf("write record %s: select existing: %w", r.ID, err)
	}
	if existing != "" && existing != hash {
		return false, fmt.Errorf("write record %s: %w", r.ID, ErrConflict)
	}
	return false, nil
}
