package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/fanosum/internal/geometry"
)

// Serve answers bridge requests read from r using ops and writes the
// responses to w, until r is exhausted or ctx is done. Operation
// failures are reported to the caller as error responses; Serve itself
// only fails on I/O errors.
func Serve(ctx context.Context, r io.Reader, w io.Writer, ops geometry.Ops) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp response
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			resp.Error = fmt.Sprintf("malformed request: %v", err)
		} else {
			resp.ID = req.ID
			result, err := dispatch(ctx, ops, req)
			if err != nil {
				resp.Error = err.Error()
			} else if resp.Result, err = json.Marshal(result); err != nil {
				resp.Error = fmt.Sprintf("encode result: %v", err)
				resp.Result = nil
			}
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response %d: %w", resp.ID, err)
		}
	}
	return scanner.Err()
}

func dispatch(ctx context.Context, ops geometry.Ops, req request) (any, error) {
	switch req.Op {
	case OpProduct:
		var p productParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		return ops.Product(ctx, p.A, p.B)

	case OpConvexHull:
		var p hullParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		return ops.ConvexHull(ctx, p.Points)

	case OpInteriorLatticePoints:
		var p polytopeParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if p.Polytope == nil {
			return nil, fmt.Errorf("%s: missing polytope", req.Op)
		}
		return ops.InteriorLatticePoints(ctx, p.Polytope)

	case OpInvariants:
		var p polytopeParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if p.Polytope == nil {
			return nil, fmt.Errorf("%s: missing polytope", req.Op)
		}
		return ops.Invariants(ctx, p.Polytope)

	case OpIsomorphic:
		var p pairParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		if p.A == nil || p.B == nil {
			return nil, fmt.Errorf("%s: missing polytope", req.Op)
		}
		return ops.Isomorphic(ctx, p.A, p.B)
	}
	return nil, fmt.Errorf("unknown operation %q", req.Op)
}

func decodeParams(req request, v any) error {
	if len(req.Params) == 0 {
		return fmt.Errorf("%s: missing params", req.Op)
	}
	if err := json.Unmarshal(req.Params, v); err != nil {
		return fmt.Errorf("%s: decode params: %w", req.Op, err)
	}
	return nil
}
