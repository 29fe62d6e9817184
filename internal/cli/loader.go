package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

// optionsSchema constrains option files written in CUE. The struct is
// open, so unknown fields pass through and are ignored on decode.
const optionsSchema = `
verbose?:   bool
splitinfo?: bool
start?:     int & >=1
end?:       int & >=1
skip?:      int & >=0
amount?:    int & >=0
`

// LoadOptionsFile reads enumeration options from a YAML (.yaml, .yml) or
// CUE (.cue) file. Unknown fields are ignored. Failures are returned as
// *engine.ConfigurationError.
func LoadOptionsFile(path string) (engine.Options, error) {
	var opts engine.Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, &engine.ConfigurationError{Field: "config", Message: err.Error()}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, &engine.ConfigurationError{Field: "config", Message: fmt.Sprintf("%s: %v", path, err)}
		}
	case ".cue":
		if err := decodeCUEOptions(path, data, &opts); err != nil {
			return opts, &engine.ConfigurationError{Field: "config", Message: fmt.Sprintf("%s: %v", path, err)}
		}
	default:
		return opts, &engine.ConfigurationError{
			Field:   "config",
			Message: fmt.Sprintf("unsupported config file extension %q (use .yaml, .yml or .cue)", ext),
		}
	}

	return opts, nil
}

func decodeCUEOptions(path string, data []byte, opts *engine.Options) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(optionsSchema, cue.Filename("options-schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling options schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("building CUE value: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validating options: %w", err)
	}

	if err := unified.Decode(opts); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	return nil
}

// polytopeFile is the on-disk form accepted by the identify command:
// either a bare inequality matrix or an object with inequalities and
// optional equations.
type polytopeFile struct {
	Inequalities polytope.Matrix `yaml:"inequalities"`
	Equations    polytope.Matrix `yaml:"equations"`
}

// LoadPolytopeFile reads a polytope to identify from a JSON or YAML file.
func LoadPolytopeFile(path string) (*geometry.Polytope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	var pf polytopeFile
	if root := node.Content[0]; root.Kind == yaml.SequenceNode {
		err = root.Decode(&pf.Inequalities)
	} else {
		err = root.Decode(&pf)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(pf.Inequalities) == 0 {
		return nil, fmt.Errorf("%s: no inequalities", path)
	}
	if err := pf.Inequalities.Validate(); err != nil {
		return nil, fmt.Errorf("%s: inequalities: %w", path, err)
	}
	if len(pf.Equations) > 0 {
		if err := pf.Equations.Validate(); err != nil {
			return nil, fmt.Errorf("%s: equations: %w", path, err)
		}
		if pf.Equations.Cols() != pf.Inequalities.Cols() {
			return nil, fmt.Errorf("%s: equations have %d columns, inequalities %d",
				path, pf.Equations.Cols(), pf.Inequalities.Cols())
		}
	}

	return geometry.FromInequalitiesAndEquations(pf.Inequalities, pf.Equations), nil
}

// LoadRecordsFile reads catalog records from a JSON or YAML file holding
// a list of records. Every record is validated.
func LoadRecordsFile(path string) ([]polytope.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []polytope.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i, err)
		}
	}
	if records == nil {
		records = []polytope.Record{}
	}
	return records, nil
}
