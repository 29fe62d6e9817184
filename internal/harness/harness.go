package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
	"github.com/roach88/fanosum/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory catalog. A driver failure
// is not an execution error: it is recorded in Result.Err and checked
// against the scenario's expectations. Run only fails when the scenario
// cannot be set up.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := catalog.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory catalog: %w", err)
	}
	defer st.Close()

	records := make([]polytope.Record, len(scenario.Catalog))
	for i, e := range scenario.Catalog {
		records[i] = entryRecord(e)
	}
	if _, err := st.WriteRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	geom := scriptedGeometry(scenario.Geometry)
	env := engine.Env{
		Store:    st,
		Geometry: geom,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result := NewResult()
	result.Results, result.Err = invoke(ctx, env, scenario.Run)
	result.Calls = append(result.Calls, geom.Calls...)

	checkExpectations(scenario.Expect, result)
	return result, nil
}

func invoke(ctx context.Context, env engine.Env, run Invocation) (*engine.ResultSet, error) {
	switch run.Driver {
	case DriverFreeSum:
		return engine.FreeSum(ctx, env, run.Dimension, run.Options)
	case DriverSkewSum:
		return engine.SkewSimplexKSum(ctx, env, run.Dimension, run.K, run.Options)
	case DriverSkewSums:
		return engine.AllSkewSimplexSums(ctx, env, run.Dimension, run.Options)
	case DriverBipyramids:
		return engine.SkewBipyramids(ctx, env, run.Dimension, run.Options)
	}
	return nil, fmt.Errorf("unknown driver %q", run.Driver)
}

// scriptedGeometry builds the test geometry. The hull reports no
// incidences, so every hull facet bounds the shift region; the region
// itself is irrelevant because the shifts are scripted.
func scriptedGeometry(script GeometryScript) *testutil.FakeGeometry {
	geom := testutil.NewFakeGeometry()
	geom.HullFunc = func(points polytope.Matrix) (geometry.Hull, error) {
		return geometry.Hull{Facets: points.Clone()}, nil
	}
	geom.LatticePointsFunc = func(*geometry.Polytope) ([]polytope.Vector, error) {
		out := make([]polytope.Vector, len(script.Shifts))
		for i, v := range script.Shifts {
			out[i] = v.Clone()
		}
		return out, nil
	}
	return geom
}
