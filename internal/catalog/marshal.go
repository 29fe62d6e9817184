package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/fanosum/internal/polytope"
)

// marshalMatrix converts a matrix to canonical JSON TEXT for storage.
func marshalMatrix(m polytope.Matrix) (string, error) {
	data, err := polytope.MarshalCanonical(m)
	if err != nil {
		return "", fmt.Errorf("marshal matrix: %w", err)
	}
	return string(data), nil
}

// unmarshalMatrix parses a stored matrix. Empty text is an empty matrix.
func unmarshalMatrix(data string) (polytope.Matrix, error) {
	if data == "" || data == "[]" {
		return polytope.Matrix{}, nil
	}
	var m polytope.Matrix
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("unmarshal matrix: %w", err)
	}
	return m, nil
}
