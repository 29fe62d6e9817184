package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/geometry"
)

// MaxDimension is the highest dimension the catalog covers.
const MaxDimension = 9

// Options configures one enumeration call. The zero value is the default:
// quiet, Simple results, full dimension range, no pagination.
type Options struct {
	// Verbose narrates progress at info level instead of debug.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// SplitInfo selects Annotated results (id -> provenance set).
	SplitInfo bool `json:"splitinfo" yaml:"splitinfo"`

	// Start and End bound the dimension split n of FreeSum.
	// Defaults are 1 and floor(d/2).
	Start *int `json:"start,omitempty" yaml:"start,omitempty"`
	End   *int `json:"end,omitempty" yaml:"end,omitempty"`

	// Skip and Amount page the driver's designated cursor.
	Skip   *int `json:"skip,omitempty" yaml:"skip,omitempty"`
	Amount *int `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// Mode returns the result mode selected by SplitInfo.
func (o Options) Mode() Mode {
	if o.SplitInfo {
		return ModeAnnotated
	}
	return ModeSimple
}

// page converts Skip/Amount to a catalog page. An amount of 0 means no
// cap, matching the catalog's limit convention.
func (o Options) page() (catalog.Page, error) {
	var p catalog.Page
	if o.Skip != nil {
		if *o.Skip < 0 {
			return p, configError("skip", "must be >= 0, got %d", *o.Skip)
		}
		p.Skip = *o.Skip
	}
	if o.Amount != nil {
		if *o.Amount < 0 {
			return p, configError("amount", "must be >= 0, got %d", *o.Amount)
		}
		p.Limit = *o.Amount
	}
	return p, nil
}

// Int returns a pointer to v, for filling optional Options fields.
func Int(v int) *int {
	return &v
}

// Env carries the collaborators every driver needs. There is no global
// catalog connection; callers build an Env per process or per call.
type Env struct {
	Store    catalog.RecordStore
	Geometry geometry.Ops

	// Logger receives progress narration. Nil discards it.
	Logger *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func validateDimension(d int) error {
	if d < 1 || d > MaxDimension {
		return configError("dimension", "must be in 1..%d, got %d", MaxDimension, d)
	}
	return nil
}
