package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/engine"
)

// IdentifyResult is the JSON payload of the identify command.
type IdentifyResult struct {
	File string `json:"file"`
	ID   string `json:"id"`
}

// NewIdentifyCommand creates the identify command.
func NewIdentifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Identify a single polytope against the catalog",
		Long: `Identify a polytope given by its inequalities against the catalog.

The file is JSON or YAML holding either a bare inequality matrix or an
object with "inequalities" and optional "equations". Each row is
(b, a_1, ..., a_d) for b + a·x >= 0.

Exit codes:
  0 - identified
  1 - no isomorphic catalog record
  2 - command error (bad file, catalog not found, etc.)

Example:
  fanosum identify --db catalog.db square.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runIdentify(opts *RootOptions, path string, cmd *cobra.Command) error {
	s := newSession(opts, cmd)
	defer s.close()

	p, err := LoadPolytopeFile(path)
	if err != nil {
		return s.formatter.report(WrapExitError(ExitCommandError, "failed to read polytope", err))
	}

	if err := s.openCatalog(false); err != nil {
		return s.formatter.report(err)
	}
	if err := s.openGeometry(); err != nil {
		return s.formatter.report(err)
	}

	ctx, cancel := s.context()
	defer cancel()

	id, err := engine.NewIdentifier(s.store, s.geom).Identify(ctx, p)
	if err != nil {
		return s.formatter.report(err)
	}
	s.logger.Debug("identified", "file", path, "id", id)

	if s.formatter.Format == "json" {
		return s.formatter.Success(IdentifyResult{File: path, ID: id})
	}
	fmt.Fprintln(s.formatter.Writer, id)
	return nil
}
