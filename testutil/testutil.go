package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/twiddle"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Indices returns n distinct indices in [0, universe) in random order.
// n is capped at universe.
func (r *RNG) Indices(n int, universe uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if uint64(n) > universe {
		n = int(universe)
	}

	// Dense requests: partial Fisher-Yates over the whole universe.
	if uint64(n)*2 >= universe {
		all := make([]uint64, universe)
		for i := range all {
			all[i] = uint64(i)
		}
		for i := 0; i < n; i++ {
			j := i + r.rand.Intn(len(all)-i)
			all[i], all[j] = all[j], all[i]
		}
		return all[:n]
	}

	seen := make(map[uint64]struct{}, n)
	out := make([]uint64, 0, n)
	for len(out) < n {
		v := uint64(r.rand.Int63n(int64(universe)))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortedIndices is Indices in increasing order.
func (r *RNG) SortedIndices(n int, universe uint64) []uint64 {
	out := r.Indices(n, universe)
	slices.Sort(out)
	return out
}

// Clustered returns sorted indices made of runs of random length in [1, maxRun],
// separated by gaps of random length in [1, maxGap]. Useful for run-length
// encoded bitmaps, which compress clustered patterns.
func (r *RNG) Clustered(universe uint64, maxRun, maxGap int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []uint64
	pos := uint64(r.rand.Intn(maxGap + 1))
	for pos < universe {
		run := uint64(1 + r.rand.Intn(maxRun))
		for i := uint64(0); i < run && pos < universe; i++ {
			out = append(out, pos)
			pos++
		}
		pos += uint64(1 + r.rand.Intn(maxGap))
	}
	return out
}

// Hashes returns n distinct element hashes. Elements are the decimal strings
// of a random offset sequence hashed with twiddle.Hash, so streams from
// different RNG seeds are disjoint with overwhelming probability.
func (r *RNG) Hashes(n int) []uint64 {
	base := r.Uint64() >> 1
	return Stream(base, n)
}

// Stream returns the hashes of the n consecutive elements starting at first.
// Overlapping ranges share hashes, which makes intersections easy to build.
func Stream(first uint64, n int) []uint64 {
	out := make([]uint64, n)
	var buf [20]byte
	for i := range out {
		out[i] = twiddle.Hash(appendUint(buf[:0], first+uint64(i)))
	}
	return out
}

func appendUint(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, tmp[i:]...)
}

// Jaccard returns |a ∩ b| / |a ∪ b| for two sets of hashes.
func Jaccard(a, b []uint64) float64 {
	sa := make(map[uint64]struct{}, len(a))
	for _, v := range a {
		sa[v] = struct{}{}
	}
	union := len(sa)
	inter := 0
	sb := make(map[uint64]struct{}, len(b))
	for _, v := range b {
		if _, dup := sb[v]; dup {
			continue
		}
		sb[v] = struct{}{}
		if _, ok := sa[v]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// RelativeError returns |estimate - actual| / actual.
func RelativeError(estimate float64, actual int) float64 {
	return math.Abs(estimate-float64(actual)) / float64(actual)
}
