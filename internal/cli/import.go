package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/catalog"
)

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	File     string `json:"file"`
	Records  int    `json:"records"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load catalog records into the catalog database",
		Long: `Load catalog records from a JSON or YAML file into the catalog database,
creating the database if needed.

The file holds a list of records:

  - id: "4:12"
    invariants: {dimension: 2, n_vertices: 4, n_facets: 4, n_lattice_points: 5}
    facets: [[1, 1, 0], [1, -1, 0], [1, 0, 1], [1, 0, -1]]
    vertices: [[1, 1, 1], [1, 1, -1], [1, -1, 1], [1, -1, -1]]

Records whose id is already present with the same content are left
untouched, so importing the same file twice is harmless. A record whose id
is present with different content rejects the whole file, which is
imported in one transaction.

Example:
  fanosum import --db catalog.db fano-dim4.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	s := newSession(opts, cmd)
	defer s.close()

	records, err := LoadRecordsFile(path)
	if err != nil {
		return s.formatter.report(WrapExitError(ExitCommandError, "failed to read records", err))
	}
	s.formatter.VerboseLog("Read %d record(s) from %s", len(records), path)

	if err := s.openCatalog(true); err != nil {
		return s.formatter.report(err)
	}

	ctx, cancel := s.context()
	defer cancel()

	inserted, err := s.store.WriteRecords(ctx, records)
	if errors.Is(err, catalog.ErrConflict) {
		return s.formatter.report(WrapExitError(ExitCommandError, "import rejected", err))
	}
	if err != nil {
		return s.formatter.report(WrapExitError(ExitFailure, "failed to write records", err))
	}
	s.logger.Debug("import finished", "file", path, "records", len(records), "inserted", inserted)

	result := ImportResult{
		File:     path,
		Records:  len(records),
		Inserted: inserted,
		Skipped:  len(records) - inserted,
	}
	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(s.formatter.Writer, "✓ Imported %d record(s) from %s (%d already present)\n",
		result.Inserted, path, result.Skipped)
	return nil
}
