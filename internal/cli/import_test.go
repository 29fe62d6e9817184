package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/catalog"
)

const recordsYAML = `
- id: P1
  invariants: {dimension: 1, n_vertices: 2, n_facets: 2, n_lattice_points: 3}
  facets: [[1, 1], [1, -1]]
- id: P2
  invariants: {dimension: 2, n_vertices: 4, n_facets: 4, n_lattice_points: 5}
  facets: [[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]]
`

func TestImportCommand(t *testing.T) {
	records := writeFile(t, "records.yaml", recordsYAML)
	db := filepath.Join(t.TempDir(), "new.db")

	stdout, _, err := execute(t, testOptions(), "import", records, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("✓ Imported 2 record(s) from %s (0 already present)\n", records), stdout)

	s, err := catalog.Open(db)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Query(context.Background(), catalog.ByDimension(2))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].ID)
}

func TestImportCommand_Idempotent(t *testing.T) {
	records := writeFile(t, "records.yaml", recordsYAML)
	db := filepath.Join(t.TempDir(), "catalog.db")

	_, _, err := execute(t, testOptions(), "import", records, "--db", db)
	require.NoError(t, err)

	stdout, _, err := execute(t, testOptions(), "import", records, "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf(`{"status":"ok","data":{"file":%q,"records":2,"inserted":0,"skipped":2},"trace_id":"test-run-default"}`+"\n", records),
		stdout)
}

func TestImportCommand_InvalidRecords(t *testing.T) {
	records := writeFile(t, "records.yaml", `
- id: P1
  invariants: {dimension: 2, n_vertices: 2, n_facets: 2, n_lattice_points: 3}
  facets: [[1, 1], [1, -1]]
`)
	db := filepath.Join(t.TempDir(), "catalog.db")

	_, stderr, err := execute(t, testOptions(), "import", records, "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_INPUT]: failed to read records")
	assert.NoFileExists(t, db)
}

func TestImportCommand_RequiresDB(t *testing.T) {
	records := writeFile(t, "records.yaml", recordsYAML)

	_, stderr, err := execute(t, testOptions(), "import", records)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "no catalog database given")
}

func TestImportCommand_ConflictingRecord(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, _, err := execute(t, testOptions(), "import", writeFile(t, "records.yaml", recordsYAML), "--db", db)
	require.NoError(t, err)

	changed := writeFile(t, "changed.yaml", `
- id: P1
  invariants: {dimension: 1, n_vertices: 2, n_facets: 2, n_lattice_points: 3}
  facets: [[2, 1], [1, -1]]
`)
	_, stderr, err := execute(t, testOptions(), "import", changed, "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_INPUT]: import rejected")
	assert.Contains(t, stderr, "record already present with different content")
}
