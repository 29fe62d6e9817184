package polytope

import (
	"fmt"
	"strings"
)

// Vector is a homogeneous integer row vector.
type Vector []int64

// Clone returns a copy of v that shares no storage with it.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Equal reports whether v and w have the same entries.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

// String formats v as "(a, b, c)".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Matrix is a row-major integer matrix. All rows have the same length.
type Matrix []Vector

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the row length, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = row.Clone()
	}
	return out
}

// PadRight returns a copy of m with k zero columns appended to every row.
func (m Matrix) PadRight(k int) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		padded := make(Vector, len(row)+k)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// Validate checks that every row has the same length.
func (m Matrix) Validate() error {
	cols := m.Cols()
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return nil
}

// Stack concatenates the rows of ms top to bottom into a new matrix.
// The result shares no storage with its inputs.
func Stack(ms ...Matrix) Matrix {
	n := 0
	for _, m := range ms {
		n += len(m)
	}
	out := make(Matrix, 0, n)
	for _, m := range ms {
		for _, row := range m {
			out = append(out, row.Clone())
		}
	}
	return out
}

// Invariants is the cheap numeric signature used to shortlist catalog
// records before running an exact isomorphism test.
type Invariants struct {
	Dimension     int `json:"dimension" yaml:"dimension"`
	Vertices      int `json:"n_vertices" yaml:"n_vertices"`
	Facets        int `json:"n_facets" yaml:"n_facets"`
	LatticePoints int `json:"n_lattice_points" yaml:"n_lattice_points"`
}

// String formats the invariants for log and error messages.
func (inv Invariants) String() string {
	return fmt.Sprintf("dim=%d vertices=%d facets=%d lattice_points=%d",
		inv.Dimension, inv.Vertices, inv.Facets, inv.LatticePoints)
}

// Record is a canonical catalog entry. Records are owned by the catalog
// and must not be mutated by callers.
type Record struct {
	ID         string     `json:"id" yaml:"id"`
	Invariants Invariants `json:"invariants" yaml:"invariants"`

	// Facets is the inequality description, one facet per row.
	Facets Matrix `json:"facets" yaml:"facets"`

	// Vertices is optional payload kept for geometry backends that prefer
	// a V-description. The engine never reads it.
	Vertices Matrix `json:"vertices,omitempty" yaml:"vertices,omitempty"`
}

// Validate checks the structural consistency of a record before it is
// written to the catalog.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if len(r.Facets) == 0 {
		return fmt.Errorf("record %s: facets are required", r.ID)
	}
	if err := r.Facets.Validate(); err != nil {
		return fmt.Errorf("record %s: facets: %w", r.ID, err)
	}
	if r.Facets.Cols() != r.Invariants.Dimension+1 {
		return fmt.Errorf("record %s: facets have %d columns, dimension %d needs %d",
			r.ID, r.Facets.Cols(), r.Invariants.Dimension, r.Invariants.Dimension+1)
	}
	if r.Invariants.Facets != len(r.Facets) {
		return fmt.Errorf("record %s: n_facets=%d but %d facet rows given",
			r.ID, r.Invariants.Facets, len(r.Facets))
	}
	if err := r.Vertices.Validate(); err != nil {
		return fmt.Errorf("record %s: vertices: %w", r.ID, err)
	}
	return nil
}
