package engine

import (
	"context"
	"fmt"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

// SkewSimplexKSum finds the catalog records of dimension d that are skew
// sums of a k-simplex with a catalog record of dimension d-k, trying every
// interior lattice point of the feasible region as apex shift.
// Skip/Amount page the cursor over dimension d-k.
//
// For k == d the simplex itself is the only candidate; it is recorded
// under its own id with the simplex apex row as shift.
func SkewSimplexKSum(ctx context.Context, env Env, d, k int, opts Options) (*ResultSet, error) {
	if err := validateSimplex(d, k); err != nil {
		return nil, err
	}
	page, err := opts.page()
	if err != nil {
		return nil, err
	}

	r := newRun(env, opts, "skewsum")
	r.progress(ctx, "starting", "dimension", d, "k", k, "skip", page.Skip, "amount", page.Limit)

	simplex := SimplexMatrix(d, k)

	if k == d {
		id, err := r.identifier.Identify(ctx, geometry.FromInequalities(simplex))
		if err != nil {
			return nil, fmt.Errorf("identify %d-simplex: %w", d, err)
		}
		r.results.Insert(id, polytope.ShiftProvenance(id, simplex[0]))
		return r.finish(ctx), nil
	}

	ties := TieEquations(d, k)
	err = r.each(ctx, catalog.ByDimension(d-k), page, func(src polytope.Record) error {
		cands, err := r.skewSumCandidates(ctx, src, simplex, ties, k)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.ID, err)
		}
		r.progress(ctx, "source", "id", src.ID, "shifts", len(cands))
		return r.fold(ctx, cands)
	})
	if err != nil {
		return nil, fmt.Errorf("skew sum d=%d k=%d: %w", d, k, err)
	}

	return r.finish(ctx), nil
}

// skewSumCandidates lists one candidate per interior lattice point of the
// region of admissible apex shifts for src.
func (r *run) skewSumCandidates(ctx context.Context, src polytope.Record, simplex, ties polytope.Matrix, k int) ([]candidate, error) {
	facets := geometry.Primitive(src.Facets)
	if want := simplex.Cols() - k; facets.Cols() != want {
		return nil, fmt.Errorf("facets have %d columns, expected %d", facets.Cols(), want)
	}

	hull, err := r.env.Geometry.ConvexHull(ctx, polytope.Stack(simplex, facets.PadRight(k)))
	if err != nil {
		return nil, fmt.Errorf("convex hull: %w", err)
	}

	// Facets through the simplex apex (hull vertex 0) do not bound the
	// shift region.
	region := geometry.FromInequalitiesAndEquations(hull.FacetsAvoiding(0), ties)
	shifts, err := r.env.Geometry.InteriorLatticePoints(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("interior lattice points: %w", err)
	}

	cands := make([]candidate, 0, len(shifts))
	for _, n := range shifts {
		ineq, err := SkewSimplexInequalities(facets, k, n)
		if err != nil {
			return nil, err
		}
		cands = append(cands, candidate{
			poly:       geometry.FromInequalities(ineq),
			provenance: polytope.ShiftProvenance(src.ID, n),
		})
	}
	return cands, nil
}

// AllSkewSimplexSums runs SkewSimplexKSum for every k in 1..d and merges
// the results. The same Skip/Amount is applied unchanged to every k.
// Any failure aborts the whole call.
func AllSkewSimplexSums(ctx context.Context, env Env, d int, opts Options) (*ResultSet, error) {
	if err := validateDimension(d); err != nil {
		return nil, err
	}
	if _, err := opts.page(); err != nil {
		return nil, err
	}

	log := env.logger().With("driver", "skewsums")
	merged := NewResultSet(opts.Mode())
	for k := 1; k <= d; k++ {
		log.Log(ctx, narrationLevel(opts), "simplex dimension", "dimension", d, "k", k)
		rs, err := SkewSimplexKSum(ctx, env, d, k, opts)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(rs); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func validateSimplex(d, k int) error {
	if err := validateDimension(d); err != nil {
		return err
	}
	if k < 1 || k > d {
		return configError("simplex dimension", "must be in 1..%d, got %d", d, k)
	}
	return nil
}
