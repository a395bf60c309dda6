package reduce

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(a, b int) (int, error) { return a + b, nil }

func TestTree(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 100} {
		items := make([]int, n)
		want := 0
		for i := range items {
			items[i] = i + 1
			want += i + 1
		}

		for _, limit := range []int{0, 1, 4} {
			got, err := Tree(context.Background(), limit, items, sum)
			require.NoError(t, err)
			assert.Equal(t, want, got, "n=%d limit=%d", n, limit)
		}
	}
}

func TestTree_Order(t *testing.T) {
	// Pairing preserves left-to-right order for non-commutative merges.
	items := []string{"a", "b", "c", "d", "e"}
	got, err := Tree(context.Background(), 2, items, func(a, b string) (string, error) {
		return a + b, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "abcde", got)
}

func TestTree_Empty(t *testing.T) {
	_, err := Tree(context.Background(), 0, []int(nil), sum)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestTree_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Tree(context.Background(), 2, []int{1, 2, 3, 4}, func(a, b int) (int, error) {
		if a == 3 {
			return 0, boom
		}
		return a + b, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestTree_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	_, err := Tree(ctx, 1, []int{1, 2, 3, 4}, func(a, b int) (int, error) {
		calls.Add(1)
		return a + b, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestTree_InputsUntouched(t *testing.T) {
	items := []int{5, 6, 7}
	_, err := Tree(context.Background(), 0, items, sum)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 7}, items)
}
