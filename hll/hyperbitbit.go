package hll

import (
	"math"
	"math/bits"
	"time"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/internal/hash"
)

const (
	hbbInitialRank   = 5
	hbbSwapThreshold = 31
	hbbBias          = 5.4
)

// HyperBitBit is a constant-size cardinality sketch: one rank and two 64-bit
// bitmaps. It trades accuracy (roughly 10-40%) for 17 bytes of state.
//
// A hash whose rank exceeds the current rank sets one of 64 bits; once more
// than 31 bits are set the rank advances and the next-rank bitmap, collected
// in parallel, takes over.
//
// A promotion drops every bit collected below the new rank, so the sketch is
// not idempotent: re-adding earlier hashes after a promotion can set bits
// again and raise the estimate. Rank and Count never decrease.
type HyperBitBit struct {
	rank   uint8
	bitmap uint64
	next   uint64
	opts   twiddle.Options
}

// NewHyperBitBit creates an empty sketch.
func NewHyperBitBit(opts ...twiddle.Option) *HyperBitBit {
	return &HyperBitBit{
		rank: hbbInitialRank,
		opts: twiddle.ApplyOptions(opts...),
	}
}

// Rank returns the current rank.
func (s *HyperBitBit) Rank() uint8 {
	return s.rank
}

// Clone returns an independent copy.
func (s *HyperBitBit) Clone() *HyperBitBit {
	c := *s
	return &c
}

// CopyTo overwrites dst with s. Seeds must match.
func (s *HyperBitBit) CopyTo(dst *HyperBitBit) error {
	if err := twiddle.CheckShape("seed", s.opts.Seed, dst.opts.Seed); err != nil {
		return err
	}
	dst.rank, dst.bitmap, dst.next = s.rank, s.bitmap, s.next
	return nil
}

// Add records a 64-bit hash.
func (s *HyperBitBit) Add(x uint64) {
	lo, hi := hash.Derive(x, s.opts.Seed)
	bit := uint64(1) << (lo & 63)
	rank := uint8(bits.TrailingZeros64(hi))

	if rank > s.rank {
		s.bitmap |= bit
	}
	if rank > s.rank+1 {
		s.next |= bit
	}
	s.promote()
}

// AddBytes records key, hashed with twiddle.Hash.
func (s *HyperBitBit) AddBytes(key []byte) {
	s.Add(twiddle.Hash(key))
}

func (s *HyperBitBit) promote() {
	for bits.OnesCount64(s.bitmap) > hbbSwapThreshold {
		s.rank++
		s.bitmap = s.next
		s.next = 0
	}
}

// Count returns the estimated number of distinct hashes added.
func (s *HyperBitBit) Count() float64 {
	density := float64(bits.OnesCount64(s.bitmap)) / 32
	return math.Pow(2, hbbBias+float64(s.rank)+density)
}

// Equal reports whether both sketches have identical state and seed.
func (s *HyperBitBit) Equal(other *HyperBitBit) bool {
	return s.opts.Seed == other.opts.Seed &&
		s.rank == other.rank &&
		s.bitmap == other.bitmap &&
		s.next == other.next
}

// Merge returns a new sketch approximating the union of s and other.
func (s *HyperBitBit) Merge(other *HyperBitBit) (*HyperBitBit, error) {
	out := s.Clone()
	if err := out.MergeWith(other); err != nil {
		return nil, err
	}
	return out, nil
}

// MergeWith folds other into s.
//
// Equal ranks OR both bitmap pairs. When the ranks are one apart, the lower
// sketch's next-rank bitmap is exactly its bitmap at the higher rank, so it is
// ORed into the higher sketch's bitmap. Further apart, the lower sketch holds
// no bits the higher one can use and the higher sketch wins.
func (s *HyperBitBit) MergeWith(other *HyperBitBit) error {
	start := time.Now()
	if err := twiddle.CheckShape("seed", s.opts.Seed, other.opts.Seed); err != nil {
		return s.opts.ObserveMerge(twiddle.KindHyperBitBit, "merge", start, err)
	}

	switch {
	case s.rank == other.rank:
		s.bitmap |= other.bitmap
		s.next |= other.next
	case s.rank+1 == other.rank:
		s.rank = other.rank
		s.bitmap = s.next | other.bitmap
		s.next = other.next
	case other.rank+1 == s.rank:
		s.bitmap |= other.next
	case other.rank > s.rank:
		s.rank, s.bitmap, s.next = other.rank, other.bitmap, other.next
	}
	s.promote()

	return s.opts.ObserveMerge(twiddle.KindHyperBitBit, "merge", start, nil)
}
