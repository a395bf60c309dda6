package rle

import (
	"fmt"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/bitmap"
)

// ErrOutOfOrder is returned by Set and SetRange when the position is not above
// the highest set bit. It wraps twiddle.ErrInvalidParameter.
var ErrOutOfOrder = fmt.Errorf("%w: rle positions must be set in increasing order", twiddle.ErrInvalidParameter)

// Run is a maximal sequence of equal bits.
type Run struct {
	Value  bool
	Length uint64
}

// Bitmap is a run-length encoded bitmap.
//
// Invariants:
//   - run lengths sum to Size()
//   - no run has length 0
//   - adjacent runs have different values
//
// Because the encoding is canonical, two bitmaps hold the same bits iff their
// run lists are identical.
type Bitmap struct {
	size uint64
	runs []Run
	opts twiddle.Options
}

// New creates an RLE bitmap of size bits, all cleared.
func New(size uint64, opts ...twiddle.Option) (*Bitmap, error) {
	if err := twiddle.CheckCapacity(size); err != nil {
		return nil, err
	}
	runs := make([]Run, 1, 16)
	runs[0] = Run{Value: false, Length: size}
	return &Bitmap{
		size: size,
		runs: runs,
		opts: twiddle.ApplyOptions(opts...),
	}, nil
}

// FromIndices creates an RLE bitmap with every index in indices set.
// Indices are sorted and deduplicated first, so any order is accepted.
func FromIndices(size uint64, indices []uint64, opts ...twiddle.Option) (*Bitmap, error) {
	b, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) > 0 {
		if err := twiddle.CheckIndex(sorted[len(sorted)-1], size); err != nil {
			return nil, err
		}
	}
	b.appendSorted(func(yield func(uint64) bool) {
		for _, i := range sorted {
			if !yield(i) {
				return
			}
		}
	})
	return b, nil
}

// FromRoaring creates an RLE bitmap from a roaring bitmap. Roaring iterates in
// increasing order, which matches the monotonic construction contract.
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
	b.appendSorted(func(yield func(uint64) bool) {
		it := rb.Iterator()
		for it.HasNext() {
			if !yield(uint64(it.Next())) {
				return
			}
		}
	})
	return b, nil
}

// FromBitmap encodes a dense bitmap.
func FromBitmap(src *bitmap.Bitmap, opts ...twiddle.Option) (*Bitmap, error) {
	b, err := New(src.Size(), opts...)
	if err != nil {
		return nil, err
	}
	b.appendSorted(src.ForEach)
	return b, nil
}

// appendSorted sets strictly increasing in-bounds positions, batching
// contiguous positions into single runs.
func (b *Bitmap) appendSorted(seq func(yield func(uint64) bool)) {
	var start, end uint64
	open := false
	seq(func(i uint64) bool {
		switch {
		case !open:
			start, end, open = i, i, true
		case i == end+1:
			end = i
		default:
			b.setRange(start, end)
			start, end = i, i
		}
		return true
	})
	if open {
		b.setRange(start, end)
	}
}

// ToBitmap decodes into a dense bitmap.
func (b *Bitmap) ToBitmap(opts ...twiddle.Option) (*bitmap.Bitmap, error) {
	out, err := bitmap.New(b.size, opts...)
	if err != nil {
		return nil, err
	}
	var pos uint64
	for _, r := range b.runs {
		if r.Value {
			out.SetRangeUnchecked(pos, pos+r.Length-1)
		}
		pos += r.Length
	}
	return out, nil
}

// Size returns the number of bits the bitmap holds.
func (b *Bitmap) Size() uint64 {
	return b.size
}

// Runs returns a copy of the run list.
func (b *Bitmap) Runs() []Run {
	return slices.Clone(b.runs)
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{
		size: b.size,
		runs: slices.Clone(b.runs),
		opts: b.opts,
	}
}

// CopyTo overwrites dst with the contents of b. Both must have the same size.
func (b *Bitmap) CopyTo(dst *Bitmap) error {
	if err := twiddle.CheckSize(b.size, dst.size); err != nil {
		return err
	}
	dst.runs = append(dst.runs[:0], b.runs...)
	return nil
}

// tailStart returns the first index of the trailing zero run, or Size() when
// the last run is set. Every position at or above it is clear.
func (b *Bitmap) tailStart() uint64 {
	last := b.runs[len(b.runs)-1]
	if last.Value {
		return b.size
	}
	return b.size - last.Length
}

// Set sets bit i. i must be above every previously set bit; setting a bit that
// is already set is a no-op.
func (b *Bitmap) Set(i uint64) error {
	return b.SetRange(i, i)
}

// SetRange sets every bit in [start, end]. start must be above every
// previously set bit, unless the whole range is already set.
func (b *Bitmap) SetRange(start, end uint64) error {
	if start > end {
		return b.opts.ObserveReject(twiddle.KindRLEBitmap, "set",
			twiddle.NewParameterError("range", [2]uint64{start, end}, "start must not exceed end", nil))
	}
	if err := twiddle.CheckIndex(end, b.size); err != nil {
		return b.opts.ObserveReject(twiddle.KindRLEBitmap, "set", err)
	}
	if tail := b.tailStart(); start < tail {
		if b.allSet(start, end) {
			return nil
		}
		err := fmt.Errorf("%w: position %d, highest set bit %d", ErrOutOfOrder, start, b.lastSet())
		return b.opts.ObserveReject(twiddle.KindRLEBitmap, "set", err)
	}
	b.setRange(start, end)
	return nil
}

// setRange appends [start, end] to the trailing zero run. The caller
// guarantees start >= tailStart() and end < size.
func (b *Bitmap) setRange(start, end uint64) {
	tail := b.tailStart()
	b.runs = b.runs[:len(b.runs)-1]
	b.runs = appendRun(b.runs, false, start-tail)
	b.runs = appendRun(b.runs, true, end-start+1)
	b.runs = appendRun(b.runs, false, b.size-1-end)
}

func (b *Bitmap) allSet(start, end uint64) bool {
	var pos uint64
	for _, r := range b.runs {
		next := pos + r.Length
		if start < next {
			return r.Value && end < next
		}
		pos = next
	}
	return false
}

// lastSet returns the highest set index, or -1 if the bitmap is empty.
func (b *Bitmap) lastSet() int64 {
	tail := b.tailStart()
	if tail == 0 {
		return -1
	}
	return int64(tail) - 1
}

// Test reports whether bit i is set.
func (b *Bitmap) Test(i uint64) (bool, error) {
	if err := twiddle.CheckIndex(i, b.size); err != nil {
		return false, err
	}
	var pos uint64
	for _, r := range b.runs {
		pos += r.Length
		if i < pos {
			return r.Value, nil
		}
	}
	return false, nil
}

// Zero clears every bit.
func (b *Bitmap) Zero() {
	b.runs = append(b.runs[:0], Run{Value: false, Length: b.size})
}

// Fill sets every bit.
func (b *Bitmap) Fill() {
	b.runs = append(b.runs[:0], Run{Value: true, Length: b.size})
}

// Empty reports whether no bit is set.
func (b *Bitmap) Empty() bool {
	return len(b.runs) == 1 && !b.runs[0].Value
}

// Full reports whether every bit is set.
func (b *Bitmap) Full() bool {
	return len(b.runs) == 1 && b.runs[0].Value
}

// Count returns the number of set bits.
func (b *Bitmap) Count() uint64 {
	var n uint64
	for _, r := range b.runs {
		if r.Value {
			n += r.Length
		}
	}
	return n
}

// Density returns Count()/Size().
func (b *Bitmap) Density() float64 {
	return float64(b.Count()) / float64(b.size)
}

// FindFirstZero returns the index of the lowest cleared bit, or -1 if the bitmap is full.
func (b *Bitmap) FindFirstZero() int64 {
	return b.findFirst(false)
}

// FindFirstBit returns the index of the lowest set bit, or -1 if the bitmap is empty.
func (b *Bitmap) FindFirstBit() int64 {
	return b.findFirst(true)
}

func (b *Bitmap) findFirst(value bool) int64 {
	var pos uint64
	for _, r := range b.runs {
		if r.Value == value {
			return int64(pos)
		}
		pos += r.Length
	}
	return -1
}

// Negate flips every bit in place.
func (b *Bitmap) Negate() {
	out := make([]Run, 0, len(b.runs))
	for _, r := range b.runs {
		out = appendRun(out, !r.Value, r.Length)
	}
	b.runs = out
}

// Equal reports whether other has the same size and the same bits.
func (b *Bitmap) Equal(other *Bitmap) bool {
	return b.size == other.size && slices.Equal(b.runs, other.runs)
}

// Union returns a new bitmap holding b OR other.
func (b *Bitmap) Union(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "union", or)
}

// Intersection returns a new bitmap holding b AND other.
func (b *Bitmap) Intersection(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "intersection", and)
}

// Xor returns a new bitmap holding b XOR other.
func (b *Bitmap) Xor(other *Bitmap) (*Bitmap, error) {
	return b.combine(other, "xor", xor)
}

// UnionWith sets b to b OR other.
func (b *Bitmap) UnionWith(other *Bitmap) error {
	return b.combineInPlace(other, "union", or)
}

// IntersectWith sets b to b AND other.
func (b *Bitmap) IntersectWith(other *Bitmap) error {
	return b.combineInPlace(other, "intersection", and)
}

// XorWith sets b to b XOR other.
func (b *Bitmap) XorWith(other *Bitmap) error {
	return b.combineInPlace(other, "xor", xor)
}

func or(x, y bool) bool  { return x || y }
func and(x, y bool) bool { return x && y }
func xor(x, y bool) bool { return x != y }

func (b *Bitmap) combine(other *Bitmap, op string, fn func(x, y bool) bool) (*Bitmap, error) {
	start := time.Now()
	if err := twiddle.CheckSize(b.size, other.size); err != nil {
		return nil, b.opts.ObserveMerge(twiddle.KindRLEBitmap, op, start, err)
	}
	out := &Bitmap{
		size: b.size,
		runs: mergeRuns(b.runs, other.runs, fn),
		opts: b.opts,
	}
	b.opts.ObserveMerge(twiddle.KindRLEBitmap, op, start, nil)
	return out, nil
}

func (b *Bitmap) combineInPlace(other *Bitmap, op string, fn func(x, y bool) bool) error {
	start := time.Now()
	if err := twiddle.CheckSize(b.size, other.size); err != nil {
		return b.opts.ObserveMerge(twiddle.KindRLEBitmap, op, start, err)
	}
	b.runs = mergeRuns(b.runs, other.runs, fn)
	return b.opts.ObserveMerge(twiddle.KindRLEBitmap, op, start, nil)
}

// mergeRuns walks both run lists in lockstep, cutting at every boundary of
// either side and emitting fn of the two values over each segment. Both lists
// must cover the same number of bits. Inputs are not modified.
func mergeRuns(a, b []Run, fn func(x, y bool) bool) []Run {
	out := make([]Run, 0, max(len(a), len(b)))
	i, j := 0, 0
	remA, remB := a[0].Length, b[0].Length
	for {
		n := min(remA, remB)
		out = appendRun(out, fn(a[i].Value, b[j].Value), n)
		remA -= n
		remB -= n
		if remA == 0 {
			i++
			if i == len(a) {
				break
			}
			remA = a[i].Length
		}
		if remB == 0 {
			j++
			if j == len(b) {
				break
			}
			remB = b[j].Length
		}
	}
	return out
}

// appendRun appends a run, skipping empty runs and merging with an equal-valued tail.
func appendRun(runs []Run, value bool, length uint64) []Run {
	if length == 0 {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Value == value {
		runs[n-1].Length += length
		return runs
	}
	return append(runs, Run{Value: value, Length: length})
}
