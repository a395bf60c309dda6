package hll

import (
	"math"
	"testing"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHBB(hashes []uint64, opts ...twiddle.Option) *HyperBitBit {
	s := NewHyperBitBit(opts...)
	for _, h := range hashes {
		s.Add(h)
	}
	return s
}

func TestHyperBitBit_Empty(t *testing.T) {
	s := NewHyperBitBit()
	assert.Equal(t, uint8(hbbInitialRank), s.Rank())
	assert.InDelta(t, math.Pow(2, hbbBias+hbbInitialRank), s.Count(), 1e-9)
	assert.True(t, s.Equal(NewHyperBitBit()))
}

func TestHyperBitBit_Accuracy(t *testing.T) {
	for _, n := range []int{10000, 100000, 1000000} {
		s := newHBB(testutil.Stream(0, n))
		ratio := s.Count() / float64(n)
		assert.Greater(t, ratio, 0.4, "n=%d est=%.0f", n, s.Count())
		assert.Less(t, ratio, 2.5, "n=%d est=%.0f", n, s.Count())
	}
}

func TestHyperBitBit_Monotonic(t *testing.T) {
	s := NewHyperBitBit()
	prevRank := s.Rank()
	for _, h := range testutil.Stream(0, 50000) {
		s.Add(h)
		require.GreaterOrEqual(t, s.Rank(), prevRank)
		prevRank = s.Rank()
	}
	assert.Greater(t, s.Rank(), uint8(hbbInitialRank))
}

func TestHyperBitBit_Duplicates(t *testing.T) {
	// Too few hashes to fill 32 bits, so no promotion: repeats are no-ops.
	few := testutil.Stream(0, 20)
	once := newHBB(few)
	require.Equal(t, uint8(hbbInitialRank), once.Rank())
	assert.True(t, once.Equal(newHBB(append(few, few...))))

	// Past a promotion repeats may set forgotten bits again, but the
	// estimate only moves up.
	hashes := testutil.Stream(0, 10000)
	once = newHBB(hashes)
	require.Greater(t, once.Rank(), uint8(hbbInitialRank))
	twice := once.Clone()
	for _, h := range hashes {
		twice.Add(h)
	}
	assert.GreaterOrEqual(t, twice.Rank(), once.Rank())
	assert.GreaterOrEqual(t, twice.Count(), once.Count())
}

func TestHyperBitBit_Merge(t *testing.T) {
	x := newHBB(testutil.Stream(0, 20000))
	y := newHBB(testutil.Stream(10000, 20000))

	self, err := x.Merge(x)
	require.NoError(t, err)
	assert.True(t, self.Equal(x))

	u, err := x.Merge(y)
	require.NoError(t, err)
	v, err := y.Merge(x)
	require.NoError(t, err)
	assert.True(t, u.Equal(v))
	assert.GreaterOrEqual(t, u.Count(), math.Min(x.Count(), y.Count()))

	ratio := u.Count() / 30000
	assert.Greater(t, ratio, 0.4)
	assert.Less(t, ratio, 2.5)

	// Far apart ranks: the larger sketch wins.
	small := newHBB(testutil.Stream(0, 10))
	big := newHBB(testutil.Stream(0, 500000))
	require.Greater(t, big.Rank(), small.Rank()+1)
	w, err := small.Merge(big)
	require.NoError(t, err)
	assert.True(t, w.Equal(big))
}

func TestHyperBitBit_SeedMismatch(t *testing.T) {
	x := newHBB(testutil.Stream(0, 100))
	y := newHBB(testutil.Stream(0, 100), twiddle.WithSeed(3))

	assert.False(t, x.Equal(y))
	_, err := x.Merge(y)
	assert.ErrorIs(t, err, twiddle.ErrShapeMismatch)
	assert.ErrorIs(t, x.CopyTo(y), twiddle.ErrShapeMismatch)
}

func TestHyperBitBit_CloneAndCopy(t *testing.T) {
	x := newHBB(testutil.Stream(0, 3000))

	c := x.Clone()
	assert.True(t, c.Equal(x))
	for _, h := range testutil.Stream(10000, 50000) {
		c.Add(h)
	}
	assert.False(t, c.Equal(x))

	dst := NewHyperBitBit()
	require.NoError(t, x.CopyTo(dst))
	assert.True(t, dst.Equal(x))

	x.AddBytes([]byte("k"))
}
