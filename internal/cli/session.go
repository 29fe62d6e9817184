package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/fanosum/internal/bridge"
	"github.com/roach88/fanosum/internal/catalog"
	"github.com/roach88/fanosum/internal/engine"
	"github.com/roach88/fanosum/internal/geometry"
)

// session holds what one command invocation needs: its run id, output
// formatter and logger and, once opened, the catalog and geometry backend.
type session struct {
	opts      *RootOptions
	cmd       *cobra.Command
	runID     string
	formatter *OutputFormatter
	logger    *slog.Logger

	store   *catalog.Store
	geom    geometry.Ops
	closers []func() error
}

func newSession(opts *RootOptions, cmd *cobra.Command) *session {
	gen := opts.RunIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	runID := gen.Generate()

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})

	return &session{
		opts:   opts,
		cmd:    cmd,
		runID:  runID,
		logger: slog.New(handler).With("run_id", runID, "command", cmd.Name()),
		formatter: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
			Verbose:   opts.Verbose,
			TraceID:   runID,
		},
	}
}

// openCatalog opens the --db catalog. Unless create is set the file must
// already exist.
func (s *session) openCatalog(create bool) error {
	path := s.opts.Database
	if path == "" {
		return NewExitError(ExitCommandError, "no catalog database given (use --db)")
	}
	if !create {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return NewExitError(ExitCommandError, "catalog not found: "+path)
		}
	}

	s.logger.Debug("opening catalog", "path", path)
	st, err := catalog.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	s.store = st
	s.closers = append(s.closers, st.Close)
	return nil
}

// openGeometry connects the geometry backend, starting the --geometry-cmd
// process unless one was injected.
func (s *session) openGeometry() error {
	if s.opts.Geometry != nil {
		s.geom = s.opts.Geometry
		return nil
	}

	argv := strings.Fields(s.opts.GeometryCmd)
	if len(argv) == 0 {
		return NewExitError(ExitCommandError,
			"no geometry backend given (use --geometry-cmd or $"+geometryCmdEnv+")")
	}

	client, err := bridge.Start(argv, s.logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start geometry backend", err)
	}
	s.geom = client
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *session) env() engine.Env {
	return engine.Env{Store: s.store, Geometry: s.geom, Logger: s.logger}
}

// context returns the command's context, cancelled on SIGINT or SIGTERM.
func (s *session) context() (context.Context, context.CancelFunc) {
	parent := s.cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// close releases everything the session opened, most recent first.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Error("error during shutdown", "error", err)
		}
	}
	s.closers = nil
}
