package catalog

import (
	"context"
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

// defaultBatchSize is the number of rows a cursor fetches per round trip.
const defaultBatchSize = 256

// Page restricts a cursor to a window of its matches. Skip discards that
// many leading matches; Limit caps how many are yielded (0 = no cap).
type Page struct {
	Skip  int
	Limit int
}

// Cursor opens a forward-only iterator over records matching filter,
// ordered by id. The cursor reads in keyset-paginated batches and holds no
// database connection between batches.
func (s *Store) Cursor(ctx context.Context, filter Filter, page Page) (Cursor, error) {
	if page.Skip < 0 {
		return nil, fmt.Errorf("open cursor: negative skip %d", page.Skip)
	}
	if page.Limit < 0 {
		return nil, fmt.Errorf("open cursor: negative limit %d", page.Limit)
	}
	conds, params, err := filter.compile()
	if err != nil {
		return nil, fmt.Errorf("open cursor: %w", err)
	}

	remaining := -1
	if page.Limit > 0 {
		remaining = page.Limit
	}
	return &recordCursor{
		store:     s,
		ctx:       ctx,
		conds:     conds,
		params:    params,
		skip:      page.Skip,
		remaining: remaining,
		batchSize: defaultBatchSize,
	}, nil
}

type recordCursor struct {
	store  *Store
	ctx    context.Context
	conds  []string
	params []any

	skip      int
	remaining int // -1 means unlimited
	batchSize int

	batch     []polytope.Record
	pos       int
	lastID    string
	started   bool
	exhausted bool

	current polytope.Record
	err     error
	closed  bool
}

func (c *recordCursor) Next() bool {
	if c.closed || c.err != nil || c.remaining == 0 {
		return false
	}
	if c.pos >= len(c.batch) {
		if c.exhausted {
			return false
		}
		if err := c.fetch(); err != nil {
			c.err = err
			return false
		}
		if len(c.batch) == 0 {
			return false
		}
	}

	c.current = c.batch[c.pos]
	c.pos++
	if c.remaining > 0 {
		c.remaining--
	}
	return true
}

func (c *recordCursor) Record() polytope.Record {
	return c.current
}

func (c *recordCursor) Err() error {
	return c.err
}

func (c *recordCursor) Close() error {
	c.closed = true
	c.batch = nil
	return nil
}

// fetch loads the next batch. The first batch applies the skip offset;
// later batches continue strictly after the last id seen.
func (c *recordCursor) fetch() error {
	size := c.batchSize
	if c.remaining > 0 && c.remaining < size {
		size = c.remaining
	}

	conds := append([]string(nil), c.conds...)
	params := append([]any(nil), c.params...)
	if c.started {
		conds = append(conds, "id > ?")
		params = append(params, c.lastID)
	}

	query := "SELECT " + recordColumns + " FROM records" + whereClause(conds) +
		" ORDER BY id COLLATE BINARY ASC LIMIT ?"
	params = append(params, size)
	if !c.started && c.skip > 0 {
		query += " OFFSET ?"
		params = append(params, c.skip)
	}

	rows, err := c.store.db.QueryContext(c.ctx, query, params...)
	if err != nil {
		return fmt.Errorf("cursor fetch: %w", err)
	}
	records, err := scanRecords(rows)
	rows.Close()
	if err != nil {
		return fmt.Errorf("cursor fetch: %w", err)
	}

	c.started = true
	c.batch = records
	c.pos = 0
	if len(records) < size {
		c.exhausted = true
	}
	if len(records) > 0 {
		c.lastID = records[len(records)-1].ID
	}
	return nil
}
