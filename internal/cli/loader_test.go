package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/polytope"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOptionsFile(t *testing.T) {
	want := engine.Options{
		SplitInfo: true,
		Start:     engine.Int(2),
		Skip:      engine.Int(10),
		Amount:    engine.Int(5),
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "options.yaml",
			content: `splitinfo: true
start: 2
skip: 10
amount: 5
`,
		},
		{
			name: "yml with unknown field",
			file: "options.yml",
			content: `splitinfo: true
start: 2
skip: 10
amount: 5
comment: ignored
`,
		},
		{
			name: "cue",
			file: "options.cue",
			content: `splitinfo: true
start:     2
skip:      10
amount:    5
`,
		},
		{
			name: "cue with unknown field",
			file: "options.cue",
			content: `splitinfo: true
start:     2
skip:      5 * 2
amount:    5
label:     "night run"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptionsFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, opts)
		})
	}
}

func TestLoadOptionsFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unsupported extension", "options.toml", "skip = 1", "unsupported config file extension"},
		{"malformed yaml", "options.yaml", "skip: [1", "options.yaml"},
		{"yaml type mismatch", "options.yaml", "skip: many", "options.yaml"},
		{"cue negative skip", "options.cue", "skip: -1", "validating options"},
		{"cue zero start", "options.cue", "start: 0", "validating options"},
		{"cue wrong type", "options.cue", `splitinfo: "yes"`, "options.cue"},
		{"cue syntax", "options.cue", "skip: ", "building CUE value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOptionsFile(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, engine.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadOptionsFile_Missing(t *testing.T) {
	_, err := LoadOptionsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, engine.IsConfigurationError(err))
}

func TestLoadPolytopeFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantEq  polytope.Matrix
	}{
		{
			name:    "bare json matrix",
			file:    "square.json",
			content: `[[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]]`,
		},
		{
			name: "yaml object",
			file: "square.yaml",
			content: `inequalities:
  - [1, 1, 0]
  - [1, -1, 0]
  - [1, 0, 1]
  - [1, 0, -1]
`,
		},
		{
			name: "json object with equations",
			file: "square.json",
			content: `{"inequalities": [[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]],
 "equations": [[0, 0, 0]]}`,
			wantEq: polytope.Matrix{{0, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadPolytopeFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, square(), p.Inequalities)
			assert.Equal(t, tt.wantEq, p.Equations)
		})
	}
}

func TestLoadPolytopeFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "", "empty file"},
		{"no inequalities", `{"equations": [[0, 1]]}`, "no inequalities"},
		{"ragged rows", `[[1, 1], [1, 0, 1]]`, "inequalities: row 1"},
		{"equation width", `{"inequalities": [[1, 1], [1, -1]], "equations": [[0, 1, 0]]}`, "equations have 3 columns"},
		{"not numbers", `[["a"]]`, "p.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPolytopeFile(writeFile(t, "p.json", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRecordsFile(t *testing.T) {
	path := writeFile(t, "records.yaml", `
- id: P1
  invariants: {dimension: 1, n_vertices: 2, n_facets: 2, n_lattice_points: 3}
  facets: [[1, 1], [1, -1]]
  vertices: [[1, 1], [1, -1]]
- id: P2
  invariants: {dimension: 2, n_vertices: 4, n_facets: 4, n_lattice_points: 5}
  facets: [[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]]
`)

	records, err := LoadRecordsFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "P1", records[0].ID)
	assert.Equal(t, polytope.Matrix{{1, 1}, {1, -1}}, records[0].Vertices)
	assert.Equal(t, 5, records[1].Invariants.LatticePoints)
	assert.Nil(t, records[1].Vertices)
}

func TestLoadRecordsFile_Empty(t *testing.T) {
	records, err := LoadRecordsFile(writeFile(t, "records.json", "[]"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRecordsFile_InvalidRecord(t *testing.T) {
	path := writeFile(t, "records.json", `[
  {"id": "P1", "invariants": {"dimension": 1, "n_vertices": 2, "n_facets": 3, "n_lattice_points": 3},
   "facets": [[1, 1], [1, -1]]}
]`)

	_, err := LoadRecordsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
	assert.Contains(t, err.Error(), "n_facets=3")
}
