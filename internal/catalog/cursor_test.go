package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fanosum/internal/polytope"
)

func seedDimension(t *testing.T, s *Store, dim, n int) []string {
	t.Helper()
	records := make([]polytope.Record, n)
	ids := make([]string, n)
	for i := range records {
		ids[i] = fmt.Sprintf("d%d-%03d", dim, i)
		records[i] = createTestRecord(ids[i], dim, dim+1)
	}
	seed(t, s, records...)
	return ids
}

func TestCursor_Pages(t *testing.T) {
	s := createTestStore(t)
	ids := seedDimension(t, s, 2, 10)
	seedDimension(t, s, 3, 4)

	tests := []struct {
		name string
		page Page
		want []string
	}{
		{"all", Page{}, ids},
		{"skip", Page{Skip: 3}, ids[3:]},
		{"limit", Page{Limit: 4}, ids[:4]},
		{"window", Page{Skip: 2, Limit: 5}, ids[2:7]},
		{"skip past end", Page{Skip: 20}, nil},
		{"limit past end", Page{Skip: 8, Limit: 5}, ids[8:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := s.Cursor(context.Background(), ByDimension(2), tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, drain(t, c))
		})
	}
}

func TestCursor_CrossesBatchBoundaries(t *testing.T) {
	s := createTestStore(t)
	ids := seedDimension(t, s, 1, 11)

	c, err := s.Cursor(context.Background(), ByDimension(1), Page{Skip: 1, Limit: 8})
	require.NoError(t, err)
	c.(*recordCursor).batchSize = 3

	assert.Equal(t, ids[1:9], drain(t, c))
}

func TestCursor_SkipPlusRestEqualsAll(t *testing.T) {
	s := createTestStore(t)
	ids := seedDimension(t, s, 2, 7)
	ctx := context.Background()

	for k := 0; k <= len(ids); k++ {
		head, err := s.Cursor(ctx, ByDimension(2), Page{Skip: 0, Limit: k})
		require.NoError(t, err)
		tail, err := s.Cursor(ctx, ByDimension(2), Page{Skip: k})
		require.NoError(t, err)

		got := drain(t, head)
		if k == 0 {
			// Limit 0 means unlimited.
			assert.Equal(t, ids, got)
			continue
		}
		got = append(got, drain(t, tail)...)
		assert.Equal(t, ids, got, "k=%d", k)
	}
}

func TestCursor_NestedCursorsShareConnection(t *testing.T) {
	s := createTestStore(t)
	outerIDs := seedDimension(t, s, 1, 3)
	innerIDs := seedDimension(t, s, 2, 3)
	ctx := context.Background()

	outer, err := s.Cursor(ctx, ByDimension(1), Page{})
	require.NoError(t, err)
	defer outer.Close()

	var pairs int
	var seen []string
	for outer.Next() {
		seen = append(seen, outer.Record().ID)
		inner, err := s.Cursor(ctx, ByDimension(2), Page{})
		require.NoError(t, err)
		got := drain(t, inner)
		assert.Equal(t, innerIDs, got)
		pairs += len(got)

		// Lookups in the middle of both scans must not block.
		_, err = s.Query(ctx, ByDimension(2))
		require.NoError(t, err)
	}
	require.NoError(t, outer.Err())
	assert.Equal(t, outerIDs, seen)
	assert.Equal(t, 9, pairs)
}

func TestCursor_NegativePage(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Cursor(context.Background(), ByDimension(1), Page{Skip: -1})
	assert.Error(t, err)
	_, err = s.Cursor(context.Background(), ByDimension(1), Page{Limit: -1})
	assert.Error(t, err)
}

func TestCursor_ClosedStopsIteration(t *testing.T) {
	s := createTestStore(t)
	seedDimension(t, s, 1, 3)

	c, err := s.Cursor(context.Background(), ByDimension(1), Page{})
	require.NoError(t, err)
	require.True(t, c.Next())
	require.NoError(t, c.Close())
	assert.False(t, c.Next())
	assert.NoError(t, c.Close())
}

func TestCursor_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	seedDimension(t, s, 1, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := s.Cursor(ctx, ByDimension(1), Page{})
	require.NoError(t, err)
	assert.False(t, c.Next())
	assert.Error(t, c.Err())
}
