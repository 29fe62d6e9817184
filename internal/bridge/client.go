package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

var _ geometry.Ops = (*Client)(nil)

// Client implements geometry.Ops by forwarding every call to a backend
// speaking the bridge protocol. Calls are serialized: one request is in
// flight at a time.
//
// Cancelling a call's context aborts the backend (the process is killed,
// or the pipes are closed) and leaves the client unusable, since the
// backend's state is unknown.
type Client struct {
	mu     sync.Mutex
	w      io.Writer
	nextID int64
	broken error
	closed bool

	responses chan response
	done      chan struct{}
	wg        sync.WaitGroup
	log       *slog.Logger

	abort      func()
	closeInput func() error
	wait       func() error
}

// NewClient creates a client over an already connected backend: requests
// are written to w and responses read from r. Close closes both.
func NewClient(r io.ReadCloser, w io.WriteCloser, logger *slog.Logger) *Client {
	c := newClient(r, w, logger)
	c.abort = func() { _ = r.Close() }
	c.closeInput = func() error {
		werr := w.Close()
		rerr := r.Close()
		if werr != nil {
			return werr
		}
		return rerr
	}
	return c
}

// Start launches argv as a backend process and connects to it. The
// process's stderr is forwarded to logger at debug level.
func Start(argv []string, logger *slog.Logger) (*Client, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("empty geometry command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	c := newClient(stdout, stdin, logger)
	c.log = c.log.With("backend", argv[0], "pid", cmd.Process.Pid)

	var killed bool
	c.abort = func() {
		killed = true
		_ = cmd.Process.Kill()
	}
	c.closeInput = stdin.Close
	c.wait = func() error {
		err := cmd.Wait()
		if killed {
			return nil
		}
		if err != nil {
			return fmt.Errorf("geometry backend exited: %w", err)
		}
		return nil
	}

	c.wg.Add(1)
	go c.logStderr(stderr)

	c.log.Debug("geometry backend started")
	return c, nil
}

func newClient(r io.Reader, w io.Writer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		w:         w,
		responses: make(chan response),
		done:      make(chan struct{}),
		log:       logger,
		wait:      func() error { return nil },
	}
	c.wg.Add(1)
	go c.readLoop(r)
	return c
}

// readLoop decodes response lines until the backend's output ends or the
// client is closed. Lines that are not JSON objects are logged and
// dropped.
func (c *Client) readLoop(r io.Reader) {
	defer c.wg.Done()
	defer close(c.responses)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			c.log.Warn("dropping malformed backend line", "error", err)
			continue
		}
		select {
		case c.responses <- resp:
		case <-c.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Debug("backend output closed", "error", err)
	}
}

func (c *Client) logStderr(r io.Reader) {
	defer c.wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.log.Debug("backend stderr", "line", scanner.Text())
	}
}

// call sends one request and waits for its response. Transport failures
// and cancellation mark the client broken; a RemoteError does not.
func (c *Client) call(ctx context.Context, op string, params, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, c.broken)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode %s params: %w", op, err)
	}
	c.nextID++
	line, err := json.Marshal(request{ID: c.nextID, Op: op, Params: raw})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	if _, err := c.w.Write(append(line, '\n')); err != nil {
		return c.fail(fmt.Errorf("write %s request: %w", op, err))
	}

	select {
	case <-ctx.Done():
		c.abort()
		return c.fail(fmt.Errorf("%s: %w", op, ctx.Err()))

	case resp, ok := <-c.responses:
		if !ok {
			return c.fail(fmt.Errorf("%s: backend closed its output", op))
		}
		if resp.ID != c.nextID {
			return c.fail(fmt.Errorf("%s: response id %d, expected %d", op, resp.ID, c.nextID))
		}
		if resp.Error != "" {
			return &RemoteError{Op: op, Message: resp.Error}
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", op, err)
		}
		return nil
	}
}

func (c *Client) fail(err error) error {
	c.broken = err
	c.log.Warn("geometry backend failed", "error", err)
	return err
}

// Close shuts the backend down and waits for it to exit. It is safe to
// call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.broken == nil {
		c.broken = fmt.Errorf("client closed")
	}
	c.mu.Unlock()

	close(c.done)
	err := c.closeInput()
	c.wg.Wait()
	if werr := c.wait(); werr != nil {
		return werr
	}
	return err
}

// Product implements geometry.Ops.
func (c *Client) Product(ctx context.Context, a, b polytope.Record) (*geometry.Polytope, error) {
	var p geometry.Polytope
	if err := c.call(ctx, OpProduct, productParams{A: a, B: b}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ConvexHull implements geometry.Ops.
func (c *Client) ConvexHull(ctx context.Context, points polytope.Matrix) (geometry.Hull, error) {
	var h geometry.Hull
	err := c.call(ctx, OpConvexHull, hullParams{Points: points}, &h)
	return h, err
}

// InteriorLatticePoints implements geometry.Ops.
func (c *Client) InteriorLatticePoints(ctx context.Context, p *geometry.Polytope) ([]polytope.Vector, error) {
	var pts []polytope.Vector
	if err := c.call(ctx, OpInteriorLatticePoints, polytopeParams{Polytope: p}, &pts); err != nil {
		return nil, err
	}
	return pts, nil
}

// Invariants implements geometry.Ops.
func (c *Client) Invariants(ctx context.Context, p *geometry.Polytope) (polytope.Invariants, error) {
	var inv polytope.Invariants
	err := c.call(ctx, OpInvariants, polytopeParams{Polytope: p}, &inv)
	return inv, err
}

// Isomorphic implements geometry.Ops.
func (c *Client) Isomorphic(ctx context.Context, a, b *geometry.Polytope) (bool, error) {
	var same bool
	err := c.call(ctx, OpIsomorphic, pairParams{A: a, B: b}, &same)
	return same, err
}
