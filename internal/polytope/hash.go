package polytope

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecord prefixes record content hashes. The version suffix allows
// the algorithm to change without colliding with stored hashes.
const DomainRecord = "fanosum/record/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash returns the content-addressed identity of a record: its id,
// invariants, facets and vertices. Two records with the same id and the
// same hash are the same catalog entry.
func (r Record) ContentHash() (string, error) {
	vertices := r.Vertices
	if vertices == nil {
		vertices = Matrix{}
	}
	obj := map[string]any{
		"id": r.ID,
		"invariants": map[string]any{
			"dimension":        r.Invariants.Dimension,
			"n_vertices":       r.Invariants.Vertices,
			"n_facets":         r.Invariants.Facets,
			"n_lattice_points": r.Invariants.LatticePoints,
		},
		"facets":   r.Facets,
		"vertices": vertices,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("content hash of %s: %w", r.ID, err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}
