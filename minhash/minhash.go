package minhash

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/internal/hash"
	"github.com/hupe1980/twiddle/internal/reduce"
)

// MaxRegisters bounds the signature length.
const MaxRegisters = 1 << 24

// MinHash is a fixed-length signature of a set of 64-bit hashes.
//
// Register i holds the minimum of h1(x) + i*h2(x) over all added x, where
// (h1, h2) is the seeded 128-bit murmur3 digest of x. The fraction of equal
// registers between two signatures estimates the Jaccard similarity of the
// underlying sets, with standard error about sqrt(J(1-J)/n).
type MinHash struct {
	registers []uint64
	opts      twiddle.Options
}

// New creates an empty signature of n registers.
func New(n int, opts ...twiddle.Option) (*MinHash, error) {
	if n <= 0 || n > MaxRegisters {
		return nil, twiddle.NewParameterError("n", n, "must be in (0, 2^24]", nil)
	}
	regs := make([]uint64, n)
	for i := range regs {
		regs[i] = math.MaxUint64
	}
	return &MinHash{
		registers: regs,
		opts:      twiddle.ApplyOptions(opts...),
	}, nil
}

// Len returns the number of registers.
func (m *MinHash) Len() int {
	return len(m.registers)
}

// Seed returns the seed of the register derivation.
func (m *MinHash) Seed() uint32 {
	return m.opts.Seed
}

// Clone returns an independent copy.
func (m *MinHash) Clone() *MinHash {
	return &MinHash{
		registers: slices.Clone(m.registers),
		opts:      m.opts,
	}
}

// CopyTo overwrites dst with m. Register count and seed must match.
func (m *MinHash) CopyTo(dst *MinHash) error {
	if err := m.checkShape(dst); err != nil {
		return err
	}
	copy(dst.registers, m.registers)
	return nil
}

// Registers returns a copy of the signature.
func (m *MinHash) Registers() []uint64 {
	return slices.Clone(m.registers)
}

// Add records the element with hash h.
func (m *MinHash) Add(h uint64) {
	h1, h2 := hash.Derive(h, m.opts.Seed)
	for i := range m.registers {
		if v := h1 + uint64(i)*h2; v < m.registers[i] {
			m.registers[i] = v
		}
	}
}

// AddBytes records key, hashed with twiddle.Hash.
func (m *MinHash) AddBytes(key []byte) {
	m.Add(twiddle.Hash(key))
}

// Estimate returns the estimated Jaccard similarity of the sets behind m and other.
func (m *MinHash) Estimate(other *MinHash) (float64, error) {
	if err := m.checkShape(other); err != nil {
		return 0, err
	}
	equal := 0
	for i, r := range m.registers {
		if r == other.registers[i] {
			equal++
		}
	}
	return float64(equal) / float64(len(m.registers)), nil
}

// Equal reports whether both signatures have the same shape and registers.
func (m *MinHash) Equal(other *MinHash) bool {
	return m.checkShape(other) == nil && slices.Equal(m.registers, other.registers)
}

// Merge returns the signature of the union of both sets.
func (m *MinHash) Merge(other *MinHash) (*MinHash, error) {
	start := time.Now()
	if err := m.checkShape(other); err != nil {
		return nil, m.opts.ObserveMerge(twiddle.KindMinHash, "merge", start, err)
	}
	out := m.Clone()
	out.mergeRegisters(other)
	m.opts.ObserveMerge(twiddle.KindMinHash, "merge", start, nil)
	return out, nil
}

// MergeWith folds other into m.
func (m *MinHash) MergeWith(other *MinHash) error {
	start := time.Now()
	if err := m.checkShape(other); err != nil {
		return m.opts.ObserveMerge(twiddle.KindMinHash, "merge", start, err)
	}
	m.mergeRegisters(other)
	return m.opts.ObserveMerge(twiddle.KindMinHash, "merge", start, nil)
}

func (m *MinHash) mergeRegisters(other *MinHash) {
	for i, r := range other.registers {
		m.registers[i] = min(m.registers[i], r)
	}
}

func (m *MinHash) checkShape(other *MinHash) error {
	if err := twiddle.CheckShape("registers", len(m.registers), len(other.registers)); err != nil {
		return err
	}
	return twiddle.CheckShape("seed", m.opts.Seed, other.opts.Seed)
}

// Union merges any number of signatures of equal shape into a new one.
// Inputs are not modified.
func Union(ctx context.Context, signatures ...*MinHash) (*MinHash, error) {
	if len(signatures) == 0 {
		return nil, twiddle.NewParameterError("signatures", 0, "at least one signature required", nil)
	}
	for _, s := range signatures[1:] {
		if err := signatures[0].checkShape(s); err != nil {
			return nil, err
		}
	}
	if len(signatures) == 1 {
		return signatures[0].Clone(), nil
	}
	return reduce.Tree(ctx, signatures[0].opts.Parallelism, signatures, (*MinHash).Merge)
}
