package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/fanosum/internal/polytope"
)

// Mode selects the shape of a ResultSet. It is fixed at construction.
type Mode int

const (
	// ModeSimple collects identified ids only.
	ModeSimple Mode = iota

	// ModeAnnotated maps each identified id to the set of constructions
	// that produced it.
	ModeAnnotated
)

// String returns "simple" or "annotated".
func (m Mode) String() string {
	if m == ModeAnnotated {
		return "annotated"
	}
	return "simple"
}

// ResultSet accumulates identified ids for one enumeration call.
// Entries are append-only. A ResultSet is not safe for concurrent use.
type ResultSet struct {
	mode Mode

	// entries maps id -> provenance key -> provenance. The inner map is
	// nil in Simple mode.
	entries map[string]map[string]polytope.Provenance
}

// NewResultSet creates an empty result set.
func NewResultSet(mode Mode) *ResultSet {
	return &ResultSet{
		mode:    mode,
		entries: make(map[string]map[string]polytope.Provenance),
	}
}

// Mode returns the result set's mode.
func (r *ResultSet) Mode() Mode {
	return r.mode
}

// Insert records id. In Annotated mode p is added to id's provenance set;
// an entry equal to one already present collapses into it. Simple mode
// ignores p.
func (r *ResultSet) Insert(id string, p polytope.Provenance) {
	set, ok := r.entries[id]
	if r.mode == ModeSimple {
		if !ok {
			r.entries[id] = nil
		}
		return
	}
	if set == nil {
		set = make(map[string]polytope.Provenance)
		r.entries[id] = set
	}
	set[p.Key()] = p
}

// Merge unions other into r. Both must have the same mode.
func (r *ResultSet) Merge(other *ResultSet) error {
	if other == nil {
		return nil
	}
	if other.mode != r.mode {
		return fmt.Errorf("merge %s into %s: %w", other.mode, r.mode, ErrModeMismatch)
	}
	for id, set := range other.entries {
		if r.mode == ModeSimple {
			r.Insert(id, polytope.Provenance{})
			continue
		}
		if _, ok := r.entries[id]; !ok {
			r.entries[id] = make(map[string]polytope.Provenance, len(set))
		}
		for key, p := range set {
			r.entries[id][key] = p
		}
	}
	return nil
}

// Len returns the number of distinct ids.
func (r *ResultSet) Len() int {
	return len(r.entries)
}

// Contains reports whether id has been inserted.
func (r *ResultSet) Contains(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// IDs returns the identified ids in ascending order.
func (r *ResultSet) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Provenance returns id's provenance entries ordered by canonical key.
// It returns nil in Simple mode or for an unknown id.
func (r *ResultSet) Provenance(id string) []polytope.Provenance {
	set := r.entries[id]
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]polytope.Provenance, len(keys))
	for i, k := range keys {
		out[i] = set[k]
	}
	return out
}

// MarshalJSON encodes a Simple set as a sorted array of ids and an
// Annotated set as an object from id to its ordered provenance tuples.
func (r *ResultSet) MarshalJSON() ([]byte, error) {
	if r.mode == ModeSimple {
		return json.Marshal(r.IDs())
	}
	out := make(map[string][]polytope.Provenance, len(r.entries))
	for _, id := range r.IDs() {
		out[id] = r.Provenance(id)
	}
	return json.Marshal(out)
}

// String renders one id per line; Annotated sets append the provenance
// tuples after a colon.
func (r *ResultSet) String() string {
	var b strings.Builder
	for _, id := range r.IDs() {
		b.WriteString(id)
		if r.mode == ModeAnnotated {
			b.WriteString(":")
			for _, p := range r.Provenance(id) {
				b.WriteString(" ")
				b.WriteString(p.String())
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
