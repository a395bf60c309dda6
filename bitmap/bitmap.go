package bitmap

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/internal/conv"
)

// Bitmap is a fixed-size dense bit vector.
//
// Key properties:
//   - Size fixed at construction, never grows
//   - O(1) Test/Set/Clear, O(size/64) Count/Density/FindFirst*
//   - Padding bits past Size() in the last word are always zero
//   - Not safe for concurrent mutation; callers serialize access
type Bitmap struct {
	size uint64
	bits *bitset.BitSet
	opts twiddle.Options
}

// New creates a Bitmap holding size bits, all cleared.
func New(size uint64, opts ...twiddle.Option) (*Bitmap, error) {
	if err := twiddle.CheckCapacity(size); err != nil {
		return nil, err
	}
	n, err := conv.Uint64ToUint(size)
	if err != nil {
		return nil, twiddle.NewParameterError("size", size, "exceeds platform word size", err)
	}
	return &Bitmap{
		size: size,
		bits: bitset.New(n),
		opts: twiddle.ApplyOptions(opts...),
	}, nil
}

// FromIndices creates a Bitmap of the given size with every index in indices set.
// Indices may be unsorted and repeated.
func FromIndices(size uint64, indices []uint64, opts ...twiddle.Option) (*Bitmap, error) {
	b, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	for _, i := range indices {
		if err := b.Set(i); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromRoaring creates a Bitmap of the given size from a roaring bitmap.
func FromRoaring(size uint64, rb *roaring.Bitmap, opts ...twiddle.Option) (*Bitmap, error) {
	b, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	if !rb.IsEmpty() {
		if err := twiddle.CheckIndex(uint64(rb.Maximum()), size); err != nil {
			return nil, err
		}
	}
	it := rb.Iterator()
	for it.HasNext() {
		b.bits.Set(uint(it.Next()))
	}
	return b, nil
}

// ToRoaring returns the set bits as a roaring bitmap.
// Fails with ErrIndexOutOfBounds when a set bit does not fit in 32 bits.
func (b *Bitmap) ToRoaring() (*roaring.Bitmap, error) {
	rb := roaring.New()
	var err error
	b.ForEach(func(i uint64) bool {
		if i > uint64(^uint32(0)) {
			err = &twiddle.IndexError{Index: i, Size: uint64(^uint32(0)) + 1}
			return false
		}
		rb.Add(uint32(i))
		return true
	})
	if err != nil {
		return nil, err
	}
	return rb, nil
}

// Size returns the number of bits the bitmap holds.
func (b *Bitmap) Size() uint64 {
	return b.size
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{
		size: b.size,
		bits: b.bits.Clone(),
		opts: b.opts,
	}
}

// CopyTo overwrites dst with the contents of b. Both must have the same size.
func (b *Bitmap) CopyTo(dst *Bitmap) error {
	if err := twiddle.CheckSize(b.size, dst.size); err != nil {
		return err
	}
	b.bits.Copy(dst.bits)
	return nil
}

// Test reports whether bit i is set.
func (b *Bitmap) Test(i uint64) (bool, error) {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return false, err
	}
	return b.bits.Test(uint(i)), nil
}

// Set sets bit i.
func (b *Bitmap) Set(i uint64) error {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return err
	}
	b.bits.Set(uint(i))
	return nil
}

// Clear clears bit i.
func (b *Bitmap) Clear(i uint64) error {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return err
	}
	b.bits.Clear(uint(i))
	return nil
}

// TestAndSet sets bit i and returns its previous value.
func (b *Bitmap) TestAndSet(i uint64) (bool, error) {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return false, err
	}
	prev := b.bits.Test(uint(i))
	b.bits.Set(uint(i))
	return prev, nil
}

// TestAndClear clears bit i and returns its previous value.
func (b *Bitmap) TestAndClear(i uint64) (bool, error) {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return false, err
	}
	prev := b.bits.Test(uint(i))
	b.bits.Clear(uint(i))
	return prev, nil
}

// SetRange sets every bit in [start, end].
func (b *Bitmap) SetRange(start, end uint64) error {
	if start > end {
		return twiddle.NewParameterError("range", [2]uint64{start, end}, "start must not exceed end", nil)
	}
	if err := twiddle.CheckIndex(end, b.size); err != nil {
		return err
	}
	b.SetRangeUnchecked(start, end)
	return nil
}

// SetRangeUnchecked sets every bit in [start, end] a word at a time without
// bounds checking. The caller guarantees start <= end < Size().
func (b *Bitmap) SetRangeUnchecked(start, end uint64) {
	words := b.bits.Words()
	first, last := start>>6, end>>6
	lo := ^uint64(0) << (start & 63)
	hi := ^uint64(0) >> (63 - end&63)
	if first == last {
		words[first] |= lo & hi
		return
	}
	words[first] |= lo
	for w := first + 1; w < last; w++ {
		words[w] = ^uint64(0)
	}
	words[last] |= hi
}

// SetUnchecked sets bit i without bounds checking. The caller guarantees i < Size().
func (b *Bitmap) SetUnchecked(i uint64) {
	b.bits.Set(uint(i))
}

// TestUnchecked tests bit i without bounds checking. The caller guarantees i < Size().
func (b *Bitmap) TestUnchecked(i uint64) bool {
	return b.bits.Test(uint(i))
}

// Zero clears every bit.
func (b *Bitmap) Zero() {
	b.bits.ClearAll()
}

// Fill sets every bit.
func (b *Bitmap) Fill() {
	b.bits.ClearAll()
	b.bits.FlipRange(0, uint(b.size))
}

// Empty reports whether no bit is set.
func (b *Bitmap) Empty() bool {
	return b.bits.None()
}

// Full reports whether every bit is set.
func (b *Bitmap) Full() bool {
	return b.Count() == b.size
}

// Count returns the number of set bits.
func (b *Bitmap) Count() uint64 {
	return uint64(b.bits.Count())
}

// Density returns Count()/Size().
func (b *Bitmap) Density() float64 {
	return float64(b.Count()) / float64(b.size)
}

// FindFirstZero returns the index of the lowest cleared bit, or -1 if the bitmap is full.
func (b *Bitmap) FindFirstZero() int64 {
	i, ok := b.bits.NextClear(0)
	if !ok || uint64(i) >= b.size {
		return -1
	}
	return int64(i)
}

// FindFirstBit returns the index of the lowest set bit, or -1 if the bitmap is empty.
func (b *Bitmap) FindFirstBit() int64 {
	i, ok := b.bits.NextSet(0)
	if !ok {
		return -1
	}
	return int64(i)
}

// Negate flips every bit in place.
func (b *Bitmap) Negate() {
	b.bits.FlipRange(0, uint(b.size))
}

// Equal reports whether other has the same size and the same bits.
func (b *Bitmap) Equal(other *Bitmap) bool {
	return b.size == other.size && b.bits.Equal(other.bits)
}

// ForEach calls fn for every set bit in increasing order until fn returns false.
func (b *Bitmap) ForEach(fn func(i uint64) bool) {
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		if !fn(uint64(i)) {
			return
		}
	}
}

// Words returns a copy of the backing 64-bit words, lowest bits first.
// Hosts persisting a bitmap serialize this together with Size().
func (b *Bitmap) Words() []uint64 {
	words := b.bits.Words()
	out := make([]uint64, len(words))
	copy(out, words)
	return out
}

// Union returns a new bitmap holding b OR other.
func (b *Bitmap) Union(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "union", (*bitset.BitSet).InPlaceUnion)
}

// Intersection returns a new bitmap holding b AND other.
func (b *Bitmap) Intersection(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "intersection", (*bitset.BitSet).InPlaceIntersection)
}

// Xor returns a new bitmap holding b XOR other.
func (b *Bitmap) Xor(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "xor", (*bitset.BitSet).InPlaceSymmetricDifference)
}

// UnionWith sets b to b OR other.
func (b *Bitmap) UnionWith(other *Bitmap) error {
	return b.combineInPlace(other, "union", (*bitset.BitSet).InPlaceUnion)
}

// IntersectWith sets b to b AND other.
func (b *Bitmap) IntersectWith(other *Bitmap) error {
	return b.combineInPlace(other, "intersection", (*bitset.BitSet).InPlaceIntersection)
}

// XorWith sets b to b XOR other.
func (b *Bitmap) XorWith(other *Bitmap) error {
	return b.combineInPlace(other, "xor", (*bitset.BitSet).InPlaceSymmetricDifference)
}

func (b *Bitmap) combine(other *Bitmap, op string, fn func(dst, src *bitset.BitSet)) (*Bitmap, error) {
	start := time.Now()
	if err := twiddle.CheckSize(b.size, other.size); err != nil {
		return nil, b.opts.ObserveMerge(twiddle.KindBitmap, op, start, err)
	}
	out := b.Clone()
	fn(out.bits, other.bits)
	b.opts.ObserveMerge(twiddle.KindBitmap, op, start, nil)
	return out, nil
}

func (b *Bitmap) combineInPlace(other *Bitmap, op string, fn func(dst, src *bitset.BitSet)) error {
	start := time.Now()
	if err := twiddle.CheckSize(b.size, other.size); err != nil {
		return b.opts.ObserveMerge(twiddle.KindBitmap, op, start, err)
	}
	fn(b.bits, other.bits)
	return b.opts.ObserveMerge(twiddle.KindBitmap, op, start, nil)
}
