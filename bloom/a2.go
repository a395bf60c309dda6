package bloom

import (
	"math"
	"time"

	"github.com/hupe1980/twiddle"
)

// State is the lifecycle state of an A2 filter.
type State uint8

const (
	// SingleActive: only the active array has ever received writes.
	SingleActive State = iota
	// Migrating: a previous generation is retained in the stale array for lookups.
	Migrating
)

func (s State) String() string {
	switch s {
	case SingleActive:
		return "single-active"
	case Migrating:
		return "migrating"
	default:
		return "unknown"
	}
}

// A2 is an aging Bloom filter with two active buffers.
//
// Elements go into the active array until its density reaches the threshold.
// The next Set then rotates: the stale array is cleared and the two swap
// roles, so the previous generation stays visible to Test while the one before
// it is dropped. The false positive rate is bounded by two arrays at the
// threshold density regardless of how many elements are inserted.
//
//	SingleActive --(active.Density() >= threshold on Set)--> Migrating
//	Migrating    --(active.Density() >= threshold on Set)--> Migrating (generation+1)
//	any          --(Zero)--> SingleActive
type A2 struct {
	active     *Filter
	stale      *Filter
	threshold  float64
	state      State
	generation uint64
	opts       twiddle.Options
}

// NewA2 creates an A2 filter of two size-bit arrays, k probes per element,
// rotating when the active array's density reaches density (0 < density <= 1).
func NewA2(size uint64, k uint16, density float64, opts ...twiddle.Option) (*A2, error) {
	if math.IsNaN(density) || density <= 0 || density > 1 {
		return nil, twiddle.NewParameterError("density", density, "must be in (0, 1]", nil)
	}
	o := twiddle.ApplyOptions(opts...)
	o.Logger = o.Logger.WithKind(twiddle.KindA2BloomFilter).WithSize(size)
	// Inner filters share the seed but report nothing themselves.
	active, err := New(size, k, twiddle.WithSeed(o.Seed))
	if err != nil {
		return nil, err
	}
	stale, err := New(size, k, twiddle.WithSeed(o.Seed))
	if err != nil {
		return nil, err
	}
	return &A2{
		active:    active,
		stale:     stale,
		threshold: density,
		state:     SingleActive,
		opts:      o,
	}, nil
}

// Size returns the number of bits of each array.
func (a *A2) Size() uint64 { return a.active.Size() }

// K returns the number of probes per element.
func (a *A2) K() uint16 { return a.active.K() }

// Threshold returns the rotation density.
func (a *A2) Threshold() float64 { return a.threshold }

// State returns the lifecycle state.
func (a *A2) State() State { return a.state }

// Generation returns the number of rotations so far.
func (a *A2) Generation() uint64 { return a.generation }

// Clone returns an independent copy.
func (a *A2) Clone() *A2 {
	return &A2{
		active:     a.active.Clone(),
		stale:      a.stale.Clone(),
		threshold:  a.threshold,
		state:      a.state,
		generation: a.generation,
		opts:       a.opts,
	}
}

// CopyTo overwrites dst with a. Shapes must match.
func (a *A2) CopyTo(dst *A2) error {
	if err := a.checkShape(dst); err != nil {
		return err
	}
	if err := a.active.CopyTo(dst.active); err != nil {
		return err
	}
	if err := a.stale.CopyTo(dst.stale); err != nil {
		return err
	}
	dst.state = a.state
	dst.generation = a.generation
	return nil
}

// Set inserts the element with hash h, rotating first if the active array has
// reached the threshold density.
func (a *A2) Set(h uint64) {
	if a.active.Density() >= a.threshold {
		a.rotate()
	}
	a.active.Set(h)
}

func (a *A2) rotate() {
	density := a.active.Density()
	a.stale.Zero()
	a.active, a.stale = a.stale, a.active
	a.state = Migrating
	a.generation++
	a.opts.Logger.LogRotation(a.generation, density)
	a.opts.Metrics.RecordRotation(a.generation)
}

// Test reports whether the element with hash h may have been inserted in the
// current or the previous generation.
func (a *A2) Test(h uint64) bool {
	return a.active.Test(h) || a.stale.Test(h)
}

// SetBytes inserts key, hashed with twiddle.Hash.
func (a *A2) SetBytes(key []byte) { a.Set(twiddle.Hash(key)) }

// TestBytes tests key, hashed with twiddle.Hash.
func (a *A2) TestBytes(key []byte) bool { return a.Test(twiddle.Hash(key)) }

// Empty reports whether both arrays are empty.
func (a *A2) Empty() bool { return a.active.Empty() && a.stale.Empty() }

// Full reports whether both arrays are full.
func (a *A2) Full() bool { return a.active.Full() && a.stale.Full() }

// Count returns the number of set bits across both arrays.
func (a *A2) Count() uint64 { return a.active.Count() + a.stale.Count() }

// Density returns the mean density of the two arrays.
func (a *A2) Density() float64 { return (a.active.Density() + a.stale.Density()) / 2 }

// ActiveDensity returns the density of the array receiving writes; it is the
// value compared against the threshold.
func (a *A2) ActiveDensity() float64 { return a.active.Density() }

// Zero clears both arrays and returns to SingleActive. The generation counter
// is kept.
func (a *A2) Zero() {
	a.active.Zero()
	a.stale.Zero()
	a.state = SingleActive
}

// Fill sets every bit of both arrays.
func (a *A2) Fill() {
	a.active.Fill()
	a.stale.Fill()
	a.syncState()
}

// Negate flips every bit of both arrays.
func (a *A2) Negate() {
	a.active.Negate()
	a.stale.Negate()
	a.syncState()
}

// Equal reports whether both filters have the same shape and pairwise equal arrays.
func (a *A2) Equal(other *A2) bool {
	return a.checkShape(other) == nil &&
		a.active.Equal(other.active) &&
		a.stale.Equal(other.stale)
}

// Union returns a new filter whose arrays are the pairwise OR of both operands.
func (a *A2) Union(other *A2) (*A2, error) {
	return a.combine(other, "union", (*Filter).UnionWith)
}

// Intersection returns a new filter whose arrays are the pairwise AND of both operands.
func (a *A2) Intersection(other *A2) (*A2, error) {
	return a.combine(other, "intersection", (*Filter).IntersectWith)
}

// Xor returns a new filter whose arrays are the pairwise XOR of both operands.
func (a *A2) Xor(other *A2) (*A2, error) {
	return a.combine(other, "xor", (*Filter).XorWith)
}

// UnionWith applies the pairwise OR in place.
func (a *A2) UnionWith(other *A2) error {
	return a.combineInPlace(other, "union", (*Filter).UnionWith)
}

// IntersectWith applies the pairwise AND in place.
func (a *A2) IntersectWith(other *A2) error {
	return a.combineInPlace(other, "intersection", (*Filter).IntersectWith)
}

// XorWith applies the pairwise XOR in place.
func (a *A2) XorWith(other *A2) error {
	return a.combineInPlace(other, "xor", (*Filter).XorWith)
}

// syncState re-derives the state after a bulk rewrite of the arrays.
func (a *A2) syncState() {
	if a.stale.Empty() {
		a.state = SingleActive
	} else {
		a.state = Migrating
	}
}

func (a *A2) checkShape(other *A2) error {
	if err := a.active.checkShape(other.active); err != nil {
		return err
	}
	return twiddle.CheckShape("density", a.threshold, other.threshold)
}

func (a *A2) combine(other *A2, op string, fn func(dst, src *Filter) error) (*A2, error) {
	start := time.Now()
	if err := a.checkShape(other); err != nil {
		return nil, a.opts.ObserveMerge(twiddle.KindA2BloomFilter, op, start, err)
	}
	out := a.Clone()
	if err := out.apply(other, fn); err != nil {
		return nil, a.opts.ObserveMerge(twiddle.KindA2BloomFilter, op, start, err)
	}
	a.opts.ObserveMerge(twiddle.KindA2BloomFilter, op, start, nil)
	return out, nil
}

func (a *A2) combineInPlace(other *A2, op string, fn func(dst, src *Filter) error) error {
	start := time.Now()
	if err := a.checkShape(other); err != nil {
		return a.opts.ObserveMerge(twiddle.KindA2BloomFilter, op, start, err)
	}
	return a.opts.ObserveMerge(twiddle.KindA2BloomFilter, op, start, a.apply(other, fn))
}

// apply runs fn pairwise. Both pairs are shape checked before either array
// is written, so a failure leaves a untouched.
func (a *A2) apply(other *A2, fn func(dst, src *Filter) error) error {
	if err := a.active.checkShape(other.active); err != nil {
		return err
	}
	if err := a.stale.checkShape(other.stale); err != nil {
		return err
	}
	// Snapshot other's arrays first: when other == a, the active pass would
	// otherwise feed its own output into the stale pass.
	oa, os := other.active, other.stale
	if other == a {
		oa, os = oa.Clone(), os.Clone()
	}
	if err := fn(a.active, oa); err != nil {
		return err
	}
	if err := fn(a.stale, os); err != nil {
		return err
	}
	a.syncState()
	return nil
}
