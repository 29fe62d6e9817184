package polytope

import (
	"encoding/json"
	"fmt"
)

// ProvenanceKind tags the construction a Provenance entry describes.
type ProvenanceKind string

const (
	// KindPair records the two factors of a free sum.
	KindPair ProvenanceKind = "pair"

	// KindShift records the source and apex shift of a skew simplex sum.
	KindShift ProvenanceKind = "shift"

	// KindFacet records the source and facet index of a skew bipyramid.
	KindFacet ProvenanceKind = "facet"
)

// Provenance records how an identified polytope was constructed.
// Build values with PairProvenance, ShiftProvenance or FacetProvenance.
type Provenance struct {
	Kind   ProvenanceKind
	Source string

	Partner string // KindPair
	Shift   Vector // KindShift
	Facet   int    // KindFacet
}

// PairProvenance is the provenance of the free sum of a and b.
func PairProvenance(a, b string) Provenance {
	return Provenance{Kind: KindPair, Source: a, Partner: b}
}

// ShiftProvenance is the provenance of a skew simplex sum over source with
// apex shift n.
func ShiftProvenance(source string, n Vector) Provenance {
	return Provenance{Kind: KindShift, Source: source, Shift: n.Clone()}
}

// FacetProvenance is the provenance of the skew bipyramid over facet i of
// source.
func FacetProvenance(source string, i int) Provenance {
	return Provenance{Kind: KindFacet, Source: source, Facet: i}
}

// tuple returns the wire form: a two-element array matching the
// construction parameters.
func (p Provenance) tuple() []any {
	switch p.Kind {
	case KindPair:
		return []any{p.Source, p.Partner}
	case KindShift:
		return []any{p.Source, p.Shift}
	case KindFacet:
		return []any{p.Source, p.Facet}
	}
	return []any{p.Source}
}

// Key returns the canonical JSON encoding of p. Two entries are the same
// set member iff their keys are equal.
func (p Provenance) Key() string {
	data, err := MarshalCanonical(map[string]any{
		"kind":  string(p.Kind),
		"value": p.tuple(),
	})
	if err != nil {
		// Every field is a string, int or Vector; canonical encoding of
		// those cannot fail.
		panic(fmt.Sprintf("provenance key: %v", err))
	}
	return string(data)
}

// String formats p as a tuple, e.g. "(P1, P1)" or "(S3, (1, 0, -1))".
func (p Provenance) String() string {
	switch p.Kind {
	case KindPair:
		return fmt.Sprintf("(%s, %s)", p.Source, p.Partner)
	case KindShift:
		return fmt.Sprintf("(%s, %s)", p.Source, p.Shift)
	case KindFacet:
		return fmt.Sprintf("(%s, %d)", p.Source, p.Facet)
	}
	return fmt.Sprintf("(%s)", p.Source)
}

// MarshalJSON encodes p as its two-element tuple.
func (p Provenance) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(p.tuple())
}

// UnmarshalJSON decodes a tuple produced by MarshalJSON. The kind is
// inferred from the type of the second element.
func (p *Provenance) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("provenance: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("provenance: expected 2 elements, got %d", len(raw))
	}
	var source string
	if err := json.Unmarshal(raw[0], &source); err != nil {
		return fmt.Errorf("provenance source: %w", err)
	}

	var partner string
	if err := json.Unmarshal(raw[1], &partner); err == nil {
		*p = PairProvenance(source, partner)
		return nil
	}
	var facet int
	if err := json.Unmarshal(raw[1], &facet); err == nil {
		*p = FacetProvenance(source, facet)
		return nil
	}
	var shift Vector
	if err := json.Unmarshal(raw[1], &shift); err == nil {
		*p = ShiftProvenance(source, shift)
		return nil
	}
	return fmt.Errorf("provenance: unrecognized second element %s", raw[1])
}
