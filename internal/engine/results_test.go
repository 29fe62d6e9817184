package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/polytope"
)

func TestResultSet_Simple(t *testing.T) {
	rs := NewResultSet(ModeSimple)
	rs.Insert("b", polytope.PairProvenance("x", "y"))
	rs.Insert("a", polytope.PairProvenance("x", "y"))
	rs.Insert("b", polytope.FacetProvenance("z", 1))

	if diff := cmp.Diff([]string{"a", "b"}, rs.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, rs.Len())
	assert.True(t, rs.Contains("a"))
	assert.False(t, rs.Contains("c"))
	assert.Nil(t, rs.Provenance("b"), "simple mode keeps no provenance")
}

func TestResultSet_AnnotatedCollapsesDuplicates(t *testing.T) {
	rs := NewResultSet(ModeAnnotated)
	rs.Insert("P2", polytope.PairProvenance("P1", "P1"))
	rs.Insert("P2", polytope.PairProvenance("P1", "P1"))
	rs.Insert("P2", polytope.ShiftProvenance("S", polytope.Vector{1, 0}))
	rs.Insert("P2", polytope.ShiftProvenance("S", polytope.Vector{1, 0}))

	assert.Equal(t, 1, rs.Len())
	assert.Len(t, rs.Provenance("P2"), 2)
}

func TestResultSet_Merge(t *testing.T) {
	a := NewResultSet(ModeAnnotated)
	a.Insert("X", polytope.FacetProvenance("C", 0))
	a.Insert("Y", polytope.FacetProvenance("C", 1))

	b := NewResultSet(ModeAnnotated)
	b.Insert("X", polytope.FacetProvenance("C", 0))
	b.Insert("X", polytope.FacetProvenance("D", 0))
	b.Insert("Z", polytope.FacetProvenance("D", 1))

	require.NoError(t, a.Merge(b))
	want := map[string][]string{
		"X": {"(C, 0)", "(D, 0)"},
		"Y": {"(C, 1)"},
		"Z": {"(D, 1)"},
	}
	if diff := cmp.Diff(want, annotated(a)); diff != "" {
		t.Errorf("merged set mismatch (-want +got):\n%s", diff)
	}

	// b is unchanged
	assert.Equal(t, 2, b.Len())
}

func TestResultSet_MergeSimple(t *testing.T) {
	a := NewResultSet(ModeSimple)
	a.Insert("X", polytope.Provenance{})
	b := NewResultSet(ModeSimple)
	b.Insert("Y", polytope.Provenance{})

	require.NoError(t, a.Merge(b))
	require.NoError(t, a.Merge(nil))
	assert.Equal(t, []string{"X", "Y"}, a.IDs())
}

func TestResultSet_MergeModeMismatch(t *testing.T) {
	err := NewResultSet(ModeSimple).Merge(NewResultSet(ModeAnnotated))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModeMismatch))
}

func TestResultSet_JSON(t *testing.T) {
	simple := NewResultSet(ModeSimple)
	simple.Insert("P2", polytope.Provenance{})
	simple.Insert("P10", polytope.Provenance{})
	data, err := json.Marshal(simple)
	require.NoError(t, err)
	assert.Equal(t, `["P10","P2"]`, string(data))

	ann := NewResultSet(ModeAnnotated)
	ann.Insert("P2", polytope.PairProvenance("P1", "P1"))
	ann.Insert("T", polytope.ShiftProvenance("T", polytope.Vector{1, 1, 1}))
	data, err = json.Marshal(ann)
	require.NoError(t, err)
	assert.JSONEq(t, `{"P2":[["P1","P1"]],"T":[["T",[1,1,1]]]}`, string(data))
}

func TestResultSet_String(t *testing.T) {
	simple := NewResultSet(ModeSimple)
	simple.Insert("b", polytope.Provenance{})
	simple.Insert("a", polytope.Provenance{})
	assert.Equal(t, "a\nb\n", simple.String())

	ann := NewResultSet(ModeAnnotated)
	ann.Insert("X", polytope.FacetProvenance("C", 1))
	ann.Insert("X", polytope.FacetProvenance("C", 0))
	assert.Equal(t, "X: (C, 0) (C, 1)\n", ann.String())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "simple", ModeSimple.String())
	assert.Equal(t, "annotated", ModeAnnotated.String())
	assert.Equal(t, ModeAnnotated, Options{SplitInfo: true}.Mode())
	assert.Equal(t, ModeSimple, Options{}.Mode())
}
