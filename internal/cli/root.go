package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/geometry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	Database    string // catalog path
	GeometryCmd string // geometry backend command line

	// Geometry overrides --geometry-cmd (for testing).
	Geometry geometry.Ops

	// RunIDs overrides the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// Version is the fanosum release.
const Version = "0.1.0"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// geometryCmdEnv supplies the default for --geometry-cmd.
const geometryCmdEnv = "FANOSUM_GEOMETRY_CMD"

// NewRootCommand creates the root command for the fanosum CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so
// tests can inject a geometry backend and run id generator.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fanosum",
		Version: Version,
		Short:   "Identify constructed smooth Fano polytopes against a catalog",
		Long: `fanosum enumerates free sums, skew simplex sums and skew bipyramids of
smooth Fano polytopes from a reference catalog and identifies every
result against the catalog.

The catalog is a SQLite database (--db) filled with "fanosum import".
Geometry is computed by an external backend process (--geometry-cmd)
speaking newline-delimited JSON on stdin/stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the catalog SQLite database")
	cmd.PersistentFlags().StringVar(&opts.GeometryCmd, "geometry-cmd", os.Getenv(geometryCmdEnv),
		"geometry backend command line (default $"+geometryCmdEnv+")")

	// Add subcommands
	cmd.AddCommand(NewFreeSumCommand(opts))
	cmd.AddCommand(NewSkewSumCommand(opts))
	cmd.AddCommand(NewSkewSumsCommand(opts))
	cmd.AddCommand(NewBipyramidsCommand(opts))
	cmd.AddCommand(NewIdentifyCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
