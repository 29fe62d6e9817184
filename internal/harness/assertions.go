package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/fanosum/internal/engine"
)

// checkExpectations compares the driver outcome in result against
// expect, recording every mismatch.
func checkExpectations(expect Expectation, result *Result) {
	if expect.Error != "" {
		checkError(expect.Error, result)
		return
	}
	if result.Err != nil {
		result.AddError(fmt.Sprintf("driver failed: %v", result.Err))
		return
	}

	rs := result.Results
	if expect.IDs != nil {
		if got := rs.IDs(); !slices.Equal(sortedCopy(expect.IDs), got) {
			result.AddError(fmt.Sprintf("ids: expected %v, got %v", sortedCopy(expect.IDs), got))
		}
	}
	if expect.Provenance != nil {
		checkProvenance(expect.Provenance, rs, result)
	}
}

func checkError(kind string, result *Result) {
	if result.Err == nil {
		result.AddError(fmt.Sprintf("expected %s error, driver succeeded with %d ids", kind, result.Results.Len()))
		return
	}
	var ok bool
	switch kind {
	case ErrorConfiguration:
		ok = engine.IsConfigurationError(result.Err)
	case ErrorNotFound:
		ok = engine.IsNotFound(result.Err)
	}
	if !ok {
		result.AddError(fmt.Sprintf("expected %s error, got: %v", kind, result.Err))
	}
	if result.Results != nil {
		result.AddError("failed driver returned a partial result")
	}
}

func checkProvenance(expect map[string][]string, rs *engine.ResultSet, result *Result) {
	got := make(map[string][]string, rs.Len())
	for _, id := range rs.IDs() {
		for _, p := range rs.Provenance(id) {
			got[id] = append(got[id], p.String())
		}
	}

	for _, id := range sortedKeys(expect) {
		want := sortedCopy(expect[id])
		have, ok := got[id]
		if !ok {
			result.AddError(fmt.Sprintf("provenance: missing id %s", id))
			continue
		}
		sort.Strings(have)
		if !slices.Equal(want, have) {
			result.AddError(fmt.Sprintf("provenance of %s: expected [%s], got [%s]",
				id, strings.Join(want, " "), strings.Join(have, " ")))
		}
	}
	for _, id := range sortedKeys(got) {
		if _, ok := expect[id]; !ok {
			result.AddError(fmt.Sprintf("provenance: unexpected id %s", id))
		}
	}
}

func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
