package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndices(t *testing.T) {
	rng := NewRNG(4711)

	for _, tc := range []struct {
		n        int
		universe uint64
	}{
		{0, 10}, {5, 10}, {10, 10}, {20, 10}, {100, 1 << 20},
	} {
		idx := rng.Indices(tc.n, tc.universe)
		want := min(tc.n, int(tc.universe))
		require.Len(t, idx, want)

		seen := make(map[uint64]bool)
		for _, v := range idx {
			assert.Less(t, v, tc.universe)
			assert.False(t, seen[v], "duplicate index %d", v)
			seen[v] = true
		}
	}
}

func TestSortedIndices(t *testing.T) {
	rng := NewRNG(4711)
	idx := rng.SortedIndices(500, 10000)
	assert.True(t, slices.IsSorted(idx))
}

func TestClustered(t *testing.T) {
	rng := NewRNG(4711)
	idx := rng.Clustered(10000, 8, 16)
	require.NotEmpty(t, idx)
	assert.True(t, slices.IsSorted(idx))
	assert.Less(t, idx[len(idx)-1], uint64(10000))
}

func TestReset(t *testing.T) {
	rng := NewRNG(1)
	a := rng.Uint64()
	rng.Reset()
	assert.Equal(t, a, rng.Uint64())
	assert.Equal(t, int64(1), rng.Seed())
}

func TestStream(t *testing.T) {
	a := Stream(0, 100)
	b := Stream(50, 100)
	assert.Equal(t, a[50:], b[:50])
	assert.InDelta(t, 50.0/150.0, Jaccard(a, b), 1e-9)
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(Stream(0, 10), Stream(10, 10)))
}

func TestRelativeError(t *testing.T) {
	assert.InDelta(t, 0.1, RelativeError(110, 100), 1e-9)
	assert.InDelta(t, 0.1, RelativeError(90, 100), 1e-9)
}
