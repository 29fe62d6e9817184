package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

const recordColumns = `id, dimension, n_vertices, n_facets, n_lattice_points, facets, vertices`

// Query returns all records matching filter, ordered by id COLLATE BINARY.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) Query(ctx context.Context, filter Filter) ([]polytope.Record, error) {
	conds, params, err := filter.compile()
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records"+whereClause(conds)+" ORDER BY id COLLATE BINARY ASC",
		params...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ReadRecord retrieves a single record by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRecord(ctx context.Context, id string) (polytope.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	return scanRecord(row)
}

// DimensionCount is the number of catalog records of one dimension.
type DimensionCount struct {
	Dimension int `json:"dimension"`
	Records   int `json:"records"`
}

// CountByDimension returns record counts grouped by dimension, ascending.
func (s *Store) CountByDimension(ctx context.Context) ([]DimensionCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dimension, COUNT(*)
		FROM records
		GROUP BY dimension
		ORDER BY dimension ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	defer rows.Close()

	counts := []DimensionCount{}
	for rows.Next() {
		var c DimensionCount
		if err := rows.Scan(&c.Dimension, &c.Records); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecords(rows *sql.Rows) ([]polytope.Record, error) {
	records := []polytope.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func scanRecord(row scanner) (polytope.Record, error) {
	var r polytope.Record
	var facetsJSON, verticesJSON string

	if err := row.Scan(
		&r.ID,
		&r.Invariants.Dimension, &r.Invariants.Vertices,
		&r.Invariants.Facets, &r.Invariants.LatticePoints,
		&facetsJSON, &verticesJSON,
	); err != nil {
		return polytope.Record{}, err
	}

	facets, err := unmarshalMatrix(facetsJSON)
	if err != nil {
		return polytope.Record{}, fmt.Errorf("record %s facets: %w", r.ID, err)
	}
	r.Facets = facets

	vertices, err := unmarshalMatrix(verticesJSON)
	if err != nil {
		return polytope.Record{}, fmt.Errorf("record %s vertices: %w", r.ID, err)
	}
	if len(vertices) > 0 {
		r.Vertices = vertices
	}

	return r, nil
}
