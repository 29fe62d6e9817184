package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

// candidate is a constructed polytope waiting to be identified, together
// with the provenance it is recorded under.
type candidate struct {
	poly       *geometry.Polytope
	provenance polytope.Provenance
}

// run holds the per-call state shared by the drivers: the collaborators,
// the narration logger and the call's private ResultSet.
type run struct {
	env        Env
	identifier *Identifier
	log        *slog.Logger
	level      slog.Level
	results    *ResultSet

	identified int
}

func newRun(env Env, opts Options, driver string) *run {
	return &run{
		env:        env,
		identifier: NewIdentifier(env.Store, env.Geometry),
		log:        env.logger().With("driver", driver),
		level:      narrationLevel(opts),
		results:    NewResultSet(opts.Mode()),
	}
}

// narrationLevel is info when Verbose is set, debug otherwise.
func narrationLevel(opts Options) slog.Level {
	if opts.Verbose {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// progress logs a narration line at the call's narration level.
func (r *run) progress(ctx context.Context, msg string, args ...any) {
	r.log.Log(ctx, r.level, msg, args...)
}

// each feeds every record of a fresh cursor to fn, stopping at the first
// error.
func (r *run) each(ctx context.Context, filter catalog.Filter, page catalog.Page, fn func(polytope.Record) error) error {
	cur, err := r.env.Store.Cursor(ctx, filter, page)
	if err != nil {
		return fmt.Errorf("open cursor: %w", err)
	}
	defer cur.Close()

	for cur.Next() {
		if err := fn(cur.Record()); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("iterate cursor: %w", err)
	}
	return nil
}

// fold identifies each candidate and inserts it. The first failure aborts.
func (r *run) fold(ctx context.Context, cands []candidate) error {
	for _, c := range cands {
		id, err := r.identifier.Identify(ctx, c.poly)
		if err != nil {
			return fmt.Errorf("identify %s: %w", c.provenance, err)
		}
		r.results.Insert(id, c.provenance)
		r.identified++
		r.progress(ctx, "identified", "id", id, "from", c.provenance.String())
	}
	return nil
}

func (r *run) finish(ctx context.Context) *ResultSet {
	r.progress(ctx, "done", "candidates", r.identified, "distinct", r.results.Len())
	return r.results
}
