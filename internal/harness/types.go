package harness

import (
	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/polytope"
	"github.com/roach88/fanosum/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Results is the driver's result set; nil if the driver failed.
	Results *engine.ResultSet `json:"results,omitempty"`

	// Err is the driver's error, if any.
	Err error `json:"-"`

	// Errors lists failed expectations.
	Errors []string `json:"errors,omitempty"`

	// Calls is the geometry call log.
	Calls []string `json:"calls"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
		Calls:  []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// entryRecord converts a catalog entry to a record whose invariants match
// the test geometry.
func entryRecord(e CatalogEntry) polytope.Record {
	return testutil.Record(e.ID, e.Facets)
}
