package bloom

import (
	"math"
	"time"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/bitmap"
	"github.com/hupe1980/twiddle/internal/hash"
)

// Filter is a classic k-hash Bloom filter over a fixed-size bit array.
//
// Set and Test derive k probe positions from one 64-bit element hash by double
// hashing. Test never returns false for an element that was Set; it may return
// true for an element that was not (false positive).
type Filter struct {
	bits *bitmap.Bitmap
	k    uint16
	opts twiddle.Options
}

// New creates a Bloom filter of size bits probing k positions per element.
func New(size uint64, k uint16, opts ...twiddle.Option) (*Filter, error) {
	if k == 0 {
		return nil, twiddle.NewParameterError("k", k, "must be positive", nil)
	}
	// The inner bitmap carries no observers; merges are reported once, here.
	bits, err := bitmap.New(size)
	if err != nil {
		return nil, err
	}
	return &Filter{
		bits: bits,
		k:    k,
		opts: twiddle.ApplyOptions(opts...),
	}, nil
}

// Size returns the number of bits in the filter.
func (f *Filter) Size() uint64 {
	return f.bits.Size()
}

// K returns the number of probes per element.
func (f *Filter) K() uint16 {
	return f.k
}

// Seed returns the seed of the probe derivation.
func (f *Filter) Seed() uint32 {
	return f.opts.Seed
}

// Clone returns an independent copy.
func (f *Filter) Clone() *Filter {
	return &Filter{
		bits: f.bits.Clone(),
		k:    f.k,
		opts: f.opts,
	}
}

// CopyTo overwrites dst with f. Size, k and seed must match.
func (f *Filter) CopyTo(dst *Filter) error {
	if err := f.checkShape(dst); err != nil {
		return err
	}
	return f.bits.CopyTo(dst.bits)
}

// Set inserts the element with hash h.
func (f *Filter) Set(h uint64) {
	h1, h2 := hash.Derive(h, f.opts.Seed)
	size := f.bits.Size()
	for j := uint64(0); j < uint64(f.k); j++ {
		f.bits.SetUnchecked(hash.Probe(h1, h2, j, size))
	}
}

// Test reports whether the element with hash h may have been inserted.
func (f *Filter) Test(h uint64) bool {
	h1, h2 := hash.Derive(h, f.opts.Seed)
	size := f.bits.Size()
	for j := uint64(0); j < uint64(f.k); j++ {
		if !f.bits.TestUnchecked(hash.Probe(h1, h2, j, size)) {
			return false
		}
	}
	return true
}

// SetBytes inserts key, hashed with twiddle.Hash.
func (f *Filter) SetBytes(key []byte) {
	f.Set(twiddle.Hash(key))
}

// TestBytes tests key, hashed with twiddle.Hash.
func (f *Filter) TestBytes(key []byte) bool {
	return f.Test(twiddle.Hash(key))
}

// Empty reports whether no bit is set.
func (f *Filter) Empty() bool { return f.bits.Empty() }

// Full reports whether every bit is set.
func (f *Filter) Full() bool { return f.bits.Full() }

// Count returns the number of set bits (not the number of elements).
func (f *Filter) Count() uint64 { return f.bits.Count() }

// Density returns the fraction of set bits.
func (f *Filter) Density() float64 { return f.bits.Density() }

// Zero clears the filter.
func (f *Filter) Zero() { f.bits.Zero() }

// Fill sets every bit; every element then tests positive.
func (f *Filter) Fill() { f.bits.Fill() }

// Negate flips every bit. The result has no membership meaning; the operation
// exists for symmetry with the bitmap algebra.
func (f *Filter) Negate() { f.bits.Negate() }

// EstimateFalsePositiveRate returns density^k, the probability that an element
// never inserted tests positive at the current load.
func (f *Filter) EstimateFalsePositiveRate() float64 {
	return math.Pow(f.Density(), float64(f.k))
}

// Words returns a copy of the underlying bit array words.
func (f *Filter) Words() []uint64 {
	return f.bits.Words()
}

// Equal reports whether both filters have the same shape and identical bit arrays.
// It compares bits, not inserted sets.
func (f *Filter) Equal(other *Filter) bool {
	return f.checkShape(other) == nil && f.bits.Equal(other.bits)
}

// Union returns a new filter holding f OR other. Every element inserted into
// either operand tests positive in the result.
func (f *Filter) Union(other *Filter) (*Filter, error) {
	return f.combine(other, "union", (*bitmap.Bitmap).UnionWith)
}

// Intersection returns a new filter holding f AND other. Every element
// inserted into both operands tests positive in the result.
func (f *Filter) Intersection(other *Filter) (*Filter, error) {
	return f.combine(other, "intersection", (*bitmap.Bitmap).IntersectWith)
}

// Xor returns a new filter holding f XOR other.
func (f *Filter) Xor(other *Filter) (*Filter, error) {
	return f.combine(other, "xor", (*bitmap.Bitmap).XorWith)
}

// UnionWith sets f to f OR other.
func (f *Filter) UnionWith(other *Filter) error {
	return f.combineInPlace(other, "union", (*bitmap.Bitmap).UnionWith)
}

// IntersectWith sets f to f AND other.
func (f *Filter) IntersectWith(other *Filter) error {
	return f.combineInPlace(other, "intersection", (*bitmap.Bitmap).IntersectWith)
}

// XorWith sets f to f XOR other.
func (f *Filter) XorWith(other *Filter) error {
	return f.combineInPlace(other, "xor", (*bitmap.Bitmap).XorWith)
}

// checkShape requires equal size (ErrSizeMismatch) and equal k and seed
// (ErrShapeMismatch). Differing k or seed would leave the bitwise result
// without membership meaning.
func (f *Filter) checkShape(other *Filter) error {
	if err := twiddle.CheckSize(f.Size(), other.Size()); err != nil {
		return err
	}
	if err := twiddle.CheckShape("k", f.k, other.k); err != nil {
		return err
	}
	return twiddle.CheckShape("seed", f.opts.Seed, other.opts.Seed)
}

func (f *Filter) combine(other *Filter, op string, fn func(dst, src *bitmap.Bitmap) error) (*Filter, error) {
	start := time.Now()
	if err := f.checkShape(other); err != nil {
		return nil, f.opts.ObserveMerge(twiddle.KindBloomFilter, op, start, err)
	}
	out := f.Clone()
	if err := fn(out.bits, other.bits); err != nil {
		return nil, f.opts.ObserveMerge(twiddle.KindBloomFilter, op, start, err)
	}
	f.opts.ObserveMerge(twiddle.KindBloomFilter, op, start, nil)
	return out, nil
}

func (f *Filter) combineInPlace(other *Filter, op string, fn func(dst, src *bitmap.Bitmap) error) error {
	start := time.Now()
	if err := f.checkShape(other); err != nil {
		return f.opts.ObserveMerge(twiddle.KindBloomFilter, op, start, err)
	}
	return f.opts.ObserveMerge(twiddle.KindBloomFilter, op, start, fn(f.bits, other.bits))
}
