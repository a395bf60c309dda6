package hll

import (
	"context"
	"math"
	"math/bits"
	"slices"
	"time"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/internal/reduce"
)

const (
	// MinPrecision is the smallest accepted precision (16 registers).
	MinPrecision = 4
	// MaxPrecision is the largest accepted precision (262144 registers).
	MaxPrecision = 18
)

// two32 is the bound of the large-range correction.
const two32 = float64(1 << 32)

// HyperLogLog estimates the number of distinct 64-bit hashes it has seen.
//
// It keeps 2^p one-byte registers. The top p bits of a hash select a register;
// the register keeps the maximum rank (position of the first set bit) of the
// remaining bits. Merging takes the register-wise maximum, so the sketch of a
// union is the merge of the sketches.
type HyperLogLog struct {
	precision uint8
	registers []uint8
	opts      twiddle.Options
}

// New creates an empty sketch with 2^precision registers.
func New(precision uint8, opts ...twiddle.Option) (*HyperLogLog, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return nil, twiddle.NewParameterError("precision", precision, "must be in [4, 18]", nil)
	}
	return &HyperLogLog{
		precision: precision,
		registers: make([]uint8, 1<<precision),
		opts:      twiddle.ApplyOptions(opts...),
	}, nil
}

// RelativeError returns the standard error 1.04/sqrt(2^p) of a sketch with the given precision.
func RelativeError(precision uint8) float64 {
	return 1.04 / math.Sqrt(float64(uint64(1)<<precision))
}

// Precision returns p.
func (h *HyperLogLog) Precision() uint8 {
	return h.precision
}

// Clone returns an independent copy.
func (h *HyperLogLog) Clone() *HyperLogLog {
	return &HyperLogLog{
		precision: h.precision,
		registers: slices.Clone(h.registers),
		opts:      h.opts,
	}
}

// CopyTo overwrites dst with h. Precisions must match.
func (h *HyperLogLog) CopyTo(dst *HyperLogLog) error {
	if err := twiddle.CheckShape("precision", h.precision, dst.precision); err != nil {
		return err
	}
	copy(dst.registers, h.registers)
	return nil
}

// Registers returns a copy of the register array.
func (h *HyperLogLog) Registers() []uint8 {
	return slices.Clone(h.registers)
}

// Add records a 64-bit hash.
func (h *HyperLogLog) Add(x uint64) {
	p := h.precision
	idx := x >> (64 - p)
	// The guard bit caps the rank at 64-p+1 when the remaining bits are all zero.
	w := x<<p | 1<<(p-1)
	rank := uint8(bits.LeadingZeros64(w)) + 1
	if rank > h.registers[idx] {
		h.registers[idx] = rank
	}
}

// AddBytes records key, hashed with twiddle.Hash.
func (h *HyperLogLog) AddBytes(key []byte) {
	h.Add(twiddle.Hash(key))
}

// Count returns the estimated number of distinct hashes added.
func (h *HyperLogLog) Count() float64 {
	m := float64(len(h.registers))

	sum := 0.0
	zeros := 0
	for _, r := range h.registers {
		sum += math.Ldexp(1, -int(r))
		if r == 0 {
			zeros++
		}
	}

	est := alpha(len(h.registers)) * m * m / sum

	switch {
	case est <= 2.5*m:
		// Small range: linear counting.
		if zeros > 0 {
			return m * math.Log(m/float64(zeros))
		}
	case est > two32/30 && est < two32:
		return -two32 * math.Log(1-est/two32)
	}
	return est
}

func alpha(m int) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	default:
		return 0.7213 / (1 + 1.079/float64(m))
	}
}

// Equal reports whether both sketches have the same precision and registers.
func (h *HyperLogLog) Equal(other *HyperLogLog) bool {
	return h.precision == other.precision && slices.Equal(h.registers, other.registers)
}

// Merge returns a new sketch estimating the union of h and other.
func (h *HyperLogLog) Merge(other *HyperLogLog) (*HyperLogLog, error) {
	start := time.Now()
	if err := twiddle.CheckShape("precision", h.precision, other.precision); err != nil {
		return nil, h.opts.ObserveMerge(twiddle.KindHyperLogLog, "merge", start, err)
	}
	out := h.Clone()
	out.mergeRegisters(other)
	h.opts.ObserveMerge(twiddle.KindHyperLogLog, "merge", start, nil)
	return out, nil
}

// MergeWith folds other into h.
func (h *HyperLogLog) MergeWith(other *HyperLogLog) error {
	start := time.Now()
	if err := twiddle.CheckShape("precision", h.precision, other.precision); err != nil {
		return h.opts.ObserveMerge(twiddle.KindHyperLogLog, "merge", start, err)
	}
	h.mergeRegisters(other)
	return h.opts.ObserveMerge(twiddle.KindHyperLogLog, "merge", start, nil)
}

func (h *HyperLogLog) mergeRegisters(other *HyperLogLog) {
	for i, r := range other.registers {
		h.registers[i] = max(h.registers[i], r)
	}
}

// Union merges any number of sketches of equal precision into a new one.
// Merges run concurrently, bounded by the first sketch's parallelism option.
// Inputs are not modified.
func Union(ctx context.Context, sketches ...*HyperLogLog) (*HyperLogLog, error) {
	if len(sketches) == 0 {
		return nil, twiddle.NewParameterError("sketches", 0, "at least one sketch required", nil)
	}
	for _, s := range sketches[1:] {
		if err := twiddle.CheckShape("precision", sketches[0].precision, s.precision); err != nil {
			return nil, err
		}
	}
	if len(sketches) == 1 {
		return sketches[0].Clone(), nil
	}
	return reduce.Tree(ctx, sketches[0].opts.Parallelism, sketches, (*HyperLogLog).Merge)
}
