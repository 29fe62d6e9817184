package engine

import (
	"context"
	"fmt"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

// SkewBipyramids finds the catalog records of dimension d that are skew
// bipyramids over a facet of a catalog record of dimension d-1.
// Skip/Amount page the cursor over dimension d-1; every facet of every
// record in the window is tried. Provenance is (source id, facet index).
func SkewBipyramids(ctx context.Context, env Env, d int, opts Options) (*ResultSet, error) {
	if err := validateDimension(d); err != nil {
		return nil, err
	}
	if d < 2 {
		return nil, configError("dimension", "skew bipyramids need dimension >= 2, got %d", d)
	}
	page, err := opts.page()
	if err != nil {
		return nil, err
	}

	r := newRun(env, opts, "bipyramids")
	r.progress(ctx, "starting", "dimension", d, "skip", page.Skip, "amount", page.Limit)

	err = r.each(ctx, catalog.ByDimension(d-1), page, func(src polytope.Record) error {
		cands, err := bipyramidCandidates(src)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.ID, err)
		}
		r.progress(ctx, "source", "id", src.ID, "facets", len(cands))
		return r.fold(ctx, cands)
	})
	if err != nil {
		return nil, fmt.Errorf("skew bipyramids d=%d: %w", d, err)
	}

	return r.finish(ctx), nil
}

// bipyramidCandidates lists one candidate per facet of src.
func bipyramidCandidates(src polytope.Record) ([]candidate, error) {
	facets := geometry.Primitive(src.Facets)
	cands := make([]candidate, 0, len(facets))
	for i := range facets {
		ineq, err := BipyramidInequalities(facets, i)
		if err != nil {
			return nil, err
		}
		cands = append(cands, candidate{
			poly:       geometry.FromInequalities(ineq),
			provenance: polytope.FacetProvenance(src.ID, i),
		})
	}
	return cands, nil
}
