package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/catalog"
)

// StatsResult is the JSON payload of the stats command.
type StatsResult struct {
	Dimensions []catalog.DimensionCount `json:"dimensions"`
	Total      int                      `json:"total"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog record counts per dimension",
		Long: `Show how many catalog records exist in each dimension.

The counts are the sizes of the scans --skip and --amount page over,
which helps split a long enumeration into resumable windows.

Example:
  fanosum stats --db catalog.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	s := newSession(opts, cmd)
	defer s.close()

	if err := s.openCatalog(false); err != nil {
		return s.formatter.report(err)
	}

	ctx, cancel := s.context()
	defer cancel()

	counts, err := s.store.CountByDimension(ctx)
	if err != nil {
		return s.formatter.report(WrapExitError(ExitFailure, "failed to count records", err))
	}

	result := StatsResult{Dimensions: counts}
	for _, c := range counts {
		result.Total += c.Records
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}

	// Human-readable text output
	tw := tabwriter.NewWriter(s.formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIMENSION\tRECORDS")
	for _, c := range counts {
		fmt.Fprintf(tw, "%d\t%d\n", c.Dimension, c.Records)
	}
	fmt.Fprintf(tw, "total\t%d\n", result.Total)
	return tw.Flush()
}
