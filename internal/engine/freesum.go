package engine

import (
	"context"
	"fmt"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/polytope"
)

// FreeSum finds the catalog records of dimension d that are free sums of
// two catalog records of dimensions d-n and n, for every split n in
// [Start, End] (default [1, floor(d/2)]).
//
// For each n the outer cursor walks dimension d-n unpaginated and, per
// outer record, an inner cursor walks dimension n with Skip/Amount
// applied. When n == d-n each unordered pair is evaluated once, in
// non-decreasing id order. Provenance is (outer id, inner id).
func FreeSum(ctx context.Context, env Env, d int, opts Options) (*ResultSet, error) {
	if err := validateDimension(d); err != nil {
		return nil, err
	}
	start, end, err := splitRange(d, opts)
	if err != nil {
		return nil, err
	}
	page, err := opts.page()
	if err != nil {
		return nil, err
	}

	r := newRun(env, opts, "freesum")
	r.progress(ctx, "starting", "dimension", d, "start", start, "end", end,
		"skip", page.Skip, "amount", page.Limit)

	for n := start; n <= end; n++ {
		r.progress(ctx, "dimension split", "outer", d-n, "inner", n)
		err := r.each(ctx, catalog.ByDimension(d-n), catalog.Page{}, func(outer polytope.Record) error {
			return r.each(ctx, catalog.ByDimension(n), page, func(inner polytope.Record) error {
				if n == d-n && inner.ID < outer.ID {
					return nil
				}
				return r.freeSumPair(ctx, outer, inner)
			})
		})
		if err != nil {
			return nil, fmt.Errorf("free sum split %d+%d: %w", d-n, n, err)
		}
	}

	return r.finish(ctx), nil
}

func (r *run) freeSumPair(ctx context.Context, a, b polytope.Record) error {
	product, err := r.env.Geometry.Product(ctx, a, b)
	if err != nil {
		return fmt.Errorf("product %s x %s: %w", a.ID, b.ID, err)
	}
	return r.fold(ctx, []candidate{{
		poly:       product,
		provenance: polytope.PairProvenance(a.ID, b.ID),
	}})
}

// splitRange resolves FreeSum's dimension split range. Explicit bounds
// must lie in [1, d-1]; an empty default range (d = 1) is allowed.
func splitRange(d int, opts Options) (int, int, error) {
	start, end := 1, d/2
	if opts.Start != nil {
		start = *opts.Start
		if start < 1 || start > d-1 {
			return 0, 0, configError("start", "must be in 1..%d, got %d", d-1, start)
		}
	}
	if opts.End != nil {
		end = *opts.End
		if end < 1 || end > d-1 {
			return 0, 0, configError("end", "must be in 1..%d, got %d", d-1, end)
		}
	}
	if (opts.Start != nil || opts.End != nil) && start > end {
		return 0, 0, configError("start", "start %d is greater than end %d", start, end)
	}
	return start, end, nil
}
