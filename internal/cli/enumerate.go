package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/engine"
)

// EnumerateOptions holds flags shared by the enumeration commands.
type EnumerateOptions struct {
	*RootOptions
	Config    string // options file (.yaml, .yml, .cue)
	SplitInfo bool
	Start     int
	End       int
	Skip      int
	Amount    int
}

// EnumerationResult is the JSON payload of an enumeration command.
type EnumerationResult struct {
	Driver    string            `json:"driver"`
	Dimension int               `json:"dimension"`
	K         int               `json:"k,omitempty"`
	Mode      string            `json:"mode"`
	Count     int               `json:"count"`
	Results   *engine.ResultSet `json:"results"`
}

// enumeration describes one enumeration command.
type enumeration struct {
	driver string
	use    string
	short  string
	long   string
	args   []string // positional argument names
	ranges bool     // accepts --start/--end
	run    func(ctx context.Context, env engine.Env, args []int, opts engine.Options) (*engine.ResultSet, error)
}

// NewFreeSumCommand creates the freesum command.
func NewFreeSumCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnumerationCommand(rootOpts, enumeration{
		driver: "freesum",
		use:    "freesum <d>",
		short:  "Find catalog polytopes that are free sums of lower-dimensional ones",
		long: `Find the catalog polytopes of dimension d that are free sums of two
catalog polytopes of dimensions d-n and n, for n in [--start, --end]
(default 1 to floor(d/2)).

--skip and --amount page the inner scan over dimension n.

Example:
  fanosum freesum 4 --db catalog.db --splitinfo
  fanosum freesum 6 --db catalog.db --start 2 --end 3 --skip 100 --amount 50`,
		args:   []string{"d"},
		ranges: true,
		run: func(ctx context.Context, env engine.Env, args []int, opts engine.Options) (*engine.ResultSet, error) {
			return engine.FreeSum(ctx, env, args[0], opts)
		},
	})
}

// NewSkewSumCommand creates the skewsum command.
func NewSkewSumCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnumerationCommand(rootOpts, enumeration{
		driver: "skewsum",
		use:    "skewsum <d> <k>",
		short:  "Find catalog polytopes that are skew sums with a k-simplex",
		long: `Find the catalog polytopes of dimension d that are skew sums of a
k-simplex with a catalog polytope of dimension d-k, over every
admissible apex shift.

--skip and --amount page the scan over dimension d-k.

Example:
  fanosum skewsum 4 1 --db catalog.db --splitinfo`,
		args: []string{"d", "k"},
		run: func(ctx context.Context, env engine.Env, args []int, opts engine.Options) (*engine.ResultSet, error) {
			return engine.SkewSimplexKSum(ctx, env, args[0], args[1], opts)
		},
	})
}

// NewSkewSumsCommand creates the skewsums command.
func NewSkewSumsCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnumerationCommand(rootOpts, enumeration{
		driver: "skewsums",
		use:    "skewsums <d>",
		short:  "Run skewsum for every simplex dimension k in 1..d",
		long: `Run skewsum for every simplex dimension k in 1..d and merge the results.

--skip and --amount are applied unchanged to every k.

Example:
  fanosum skewsums 4 --db catalog.db`,
		args: []string{"d"},
		run: func(ctx context.Context, env engine.Env, args []int, opts engine.Options) (*engine.ResultSet, error) {
			return engine.AllSkewSimplexSums(ctx, env, args[0], opts)
		},
	})
}

// NewBipyramidsCommand creates the bipyramids command.
func NewBipyramidsCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnumerationCommand(rootOpts, enumeration{
		driver: "bipyramids",
		use:    "bipyramids <d>",
		short:  "Find catalog polytopes that are skew bipyramids",
		long: `Find the catalog polytopes of dimension d that are skew bipyramids over
a facet of a catalog polytope of dimension d-1.

--skip and --amount page the scan over dimension d-1.

Example:
  fanosum bipyramids 3 --db catalog.db --splitinfo`,
		args: []string{"d"},
		run: func(ctx context.Context, env engine.Env, args []int, opts engine.Options) (*engine.ResultSet, error) {
			return engine.SkewBipyramids(ctx, env, args[0], opts)
		},
	})
}

func newEnumerationCommand(rootOpts *RootOptions, e enumeration) *cobra.Command {
	opts := &EnumerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   e.use,
		Short: e.short,
		Long:  e.long + "\n\nRun without arguments to print this help.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != len(e.args) {
				return fmt.Errorf("accepts %d arg(s), received %d", len(e.args), len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runEnumeration(opts, e, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "options file (.yaml, .yml or .cue)")
	cmd.Flags().BoolVar(&opts.SplitInfo, "splitinfo", false, "report how each polytope was constructed")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "skip this many records of the paged scan")
	cmd.Flags().IntVar(&opts.Amount, "amount", 0, "process at most this many records of the paged scan (0 = all)")
	if e.ranges {
		cmd.Flags().IntVar(&opts.Start, "start", 0, "smallest split dimension n (default 1)")
		cmd.Flags().IntVar(&opts.End, "end", 0, "largest split dimension n (default floor(d/2))")
	}

	return cmd
}

func runEnumeration(opts *EnumerateOptions, e enumeration, rawArgs []string, cmd *cobra.Command) error {
	s := newSession(opts.RootOptions, cmd)
	defer s.close()

	args, err := parseIntArgs(e.args, rawArgs)
	if err != nil {
		return s.formatter.report(err)
	}

	engineOpts, err := opts.engineOptions(cmd)
	if err != nil {
		return s.formatter.report(err)
	}

	if err := s.openCatalog(false); err != nil {
		return s.formatter.report(err)
	}
	if err := s.openGeometry(); err != nil {
		return s.formatter.report(err)
	}

	ctx, cancel := s.context()
	defer cancel()

	s.logger.Debug("enumeration starting", "driver", e.driver, "args", args)
	rs, err := e.run(ctx, s.env(), args, engineOpts)
	if err != nil {
		return s.formatter.report(err)
	}
	s.logger.Debug("enumeration finished", "driver", e.driver, "count", rs.Len())

	if s.formatter.Format == "json" {
		result := EnumerationResult{
			Driver:    e.driver,
			Dimension: args[0],
			Mode:      rs.Mode().String(),
			Count:     rs.Len(),
			Results:   rs,
		}
		if len(args) > 1 {
			result.K = args[1]
		}
		return s.formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprint(s.formatter.Writer, rs.String())
	return nil
}

// engineOptions merges the options file, if any, with the flags that
// were set explicitly on the command line. Flags win.
func (o *EnumerateOptions) engineOptions(cmd *cobra.Command) (engine.Options, error) {
	var opts engine.Options
	if o.Config != "" {
		fileOpts, err := LoadOptionsFile(o.Config)
		if err != nil {
			return opts, err
		}
		opts = fileOpts
	}

	flags := cmd.Flags()
	if o.Verbose {
		opts.Verbose = true
	}
	if flags.Changed("splitinfo") {
		opts.SplitInfo = o.SplitInfo
	}
	if flags.Changed("start") {
		opts.Start = engine.Int(o.Start)
	}
	if flags.Changed("end") {
		opts.End = engine.Int(o.End)
	}
	if flags.Changed("skip") {
		opts.Skip = engine.Int(o.Skip)
	}
	if flags.Changed("amount") {
		opts.Amount = engine.Int(o.Amount)
	}
	return opts, nil
}

func parseIntArgs(names, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, &engine.ConfigurationError{
				Field:   names[i],
				Message: fmt.Sprintf("%q is not an integer", a),
			}
		}
		out[i] = v
	}
	return out, nil
}
