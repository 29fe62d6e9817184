package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/polytope"
)

// Scenario defines one enumeration run and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog lists the records seeded into the fresh catalog.
	Catalog []CatalogEntry `yaml:"catalog"`

	// Geometry scripts the parts of the test geometry that have no
	// generic fake.
	Geometry GeometryScript `yaml:"geometry,omitempty"`

	// Run selects the driver and its arguments.
	Run Invocation `yaml:"run"`

	// Expect holds the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// CatalogEntry is a catalog record given by id and facets. Invariants are
// derived the way the test geometry derives them.
type CatalogEntry struct {
	ID     string          `yaml:"id"`
	Facets polytope.Matrix `yaml:"facets"`
}

// GeometryScript configures the test geometry.
type GeometryScript struct {
	// Shifts is returned by every interior lattice point query.
	Shifts []polytope.Vector `yaml:"shifts,omitempty"`
}

// Invocation names a driver call.
type Invocation struct {
	// Driver is one of freesum, skewsum, skewsums, bipyramids.
	Driver    string         `yaml:"driver"`
	Dimension int            `yaml:"dimension"`
	K         int            `yaml:"k,omitempty"`
	Options   engine.Options `yaml:"options,omitempty"`
}

// Expectation is the expected outcome of a run. Set at most one of IDs
// and Provenance, or Error alone.
type Expectation struct {
	// IDs is the expected sorted id list (Simple mode).
	IDs []string `yaml:"ids,omitempty"`

	// Provenance maps each expected id to its provenance entries in
	// rendered form, e.g. "(P1, P1)" (Annotated mode).
	Provenance map[string][]string `yaml:"provenance,omitempty"`

	// Error is the expected failure kind.
	Error string `yaml:"error,omitempty"`
}

// Driver names.
const (
	DriverFreeSum    = "freesum"
	DriverSkewSum    = "skewsum"
	DriverSkewSums   = "skewsums"
	DriverBipyramids = "bipyramids"
)

// Expected failure kinds.
const (
	ErrorConfiguration = "configuration"
	ErrorNotFound      = "not_found"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	seen := make(map[string]bool, len(s.Catalog))
	for i, e := range s.Catalog {
		if seen[e.ID] {
			return fmt.Errorf("catalog[%d]: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if err := entryRecord(e).Validate(); err != nil {
			return fmt.Errorf("catalog[%d]: %w", i, err)
		}
	}

	switch s.Run.Driver {
	case DriverFreeSum, DriverSkewSum, DriverSkewSums, DriverBipyramids:
	case "":
		return fmt.Errorf("run.driver is required")
	default:
		return fmt.Errorf("run.driver: unknown driver %q", s.Run.Driver)
	}

	e := s.Expect
	if e.IDs != nil && e.Provenance != nil {
		return fmt.Errorf("expect: ids and provenance are mutually exclusive")
	}
	if e.Error != "" && (e.IDs != nil || e.Provenance != nil) {
		return fmt.Errorf("expect: error excludes ids and provenance")
	}
	switch e.Error {
	case "", ErrorConfiguration, ErrorNotFound:
	default:
		return fmt.Errorf("expect.error: unknown kind %q", e.Error)
	}
	if e.Provenance != nil && !s.Run.Options.SplitInfo {
		return fmt.Errorf("expect.provenance requires run.options.splitinfo")
	}

	return nil
}
