package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/fanosum/internal/geometry"
	"github.com/roach88/fanosum/internal/polytope"
)

// Operation names.
const (
	OpProduct               = "product"
	OpConvexHull            = "convex_hull"
	OpInteriorLatticePoints = "interior_lattice_points"
	OpInvariants            = "invariants"
	OpIsomorphic            = "isomorphic"
)

// maxLineSize bounds a single protocol line. Hull incidence matrices for
// dimension 9 stay well below this.
const maxLineSize = 16 << 20

type request struct {
	ID     int64           `json:"id"`
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params"`
}

type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type productParams struct {
	A polytope.Record `json:"a"`
	B polytope.Record `json:"b"`
}

type hullParams struct {
	Points polytope.Matrix `json:"points"`
}

type polytopeParams struct {
	Polytope *geometry.Polytope `json:"polytope"`
}

type pairParams struct {
	A *geometry.Polytope `json:"a"`
	B *geometry.Polytope `json:"b"`
}

// ErrUnavailable is returned by every call on a client that has been
// closed or whose backend failed, was cancelled mid-request, or broke the
// protocol.
var ErrUnavailable = errors.New("geometry backend unavailable")

// RemoteError is an error reported by the backend for one request. The
// client stays usable.
type RemoteError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("geometry backend %s: %s", e.Op, e.Message)
}

// IsRemoteError returns true if err is a RemoteError.
// Uses errors.As to handle wrapped errors.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
