package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/fanosum/internal/polytope"
)

// Field names an invariant column a Filter may constrain.
type Field string

const (
	FieldDimension     Field = "dimension"
	FieldVertices      Field = "n_vertices"
	FieldFacets        Field = "n_facets"
	FieldLatticePoints Field = "n_lattice_points"
)

// knownFields maps every filterable field to its column. Anything else is
// rejected at compile time rather than interpolated.
var knownFields = map[Field]string{
	FieldDimension:     "dimension",
	FieldVertices:      "n_vertices",
	FieldFacets:        "n_facets",
	FieldLatticePoints: "n_lattice_points",
}

// Filter is an exact-match constraint on invariant fields. An empty filter
// matches every record.
type Filter map[Field]int

// ByDimension matches every record of dimension d.
func ByDimension(d int) Filter {
	return Filter{FieldDimension: d}
}

// ByInvariants matches records whose full invariant tuple equals inv.
func ByInvariants(inv polytope.Invariants) Filter {
	return Filter{
		FieldDimension:     inv.Dimension,
		FieldVertices:      inv.Vertices,
		FieldFacets:        inv.Facets,
		FieldLatticePoints: inv.LatticePoints,
	}
}

// compile converts the filter to parameterized SQL conditions.
// Fields are emitted in sorted order so the generated SQL is stable.
func (f Filter) compile() ([]string, []any, error) {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	conds := make([]string, 0, len(fields))
	params := make([]any, 0, len(fields))
	for _, name := range fields {
		column, ok := knownFields[Field(name)]
		if !ok {
			return nil, nil, fmt.Errorf("unknown filter field %q", name)
		}
		conds = append(conds, column+" = ?")
		params = append(params, f[Field(name)])
	}
	return conds, params, nil
}

// whereClause joins conditions into a WHERE clause, or returns "" when
// there are none.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
