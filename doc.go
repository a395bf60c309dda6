// Package twiddle provides compact bit-level data structures and probabilistic
// sketches for Go.
//
// The structures live in subpackages; this package holds what they share:
// typed errors, functional options, structured logging, metrics and the
// element hash.
//
//   - bitmap: fixed-size dense bitmap with set algebra
//   - rle: run-length encoded bitmap for clustered bit patterns
//   - bloom: k-hash Bloom filter and the two-generation A2 aging filter
//   - hll: HyperLogLog and HyperBitBit cardinality sketches
//   - minhash: MinHash signatures for Jaccard similarity
//
// # Quick Start
//
//	b, _ := bitmap.FromIndices(16, []uint64{0, 3, 4, 5, 9})
//	b.Count()   // 5
//	b.Density() // 0.3125
//
//	f, _ := bloom.New(1<<20, 7)
//	f.SetBytes([]byte("user:42"))
//	f.TestBytes([]byte("user:42")) // true
//
//	h, _ := hll.New(14)
//	h.AddBytes([]byte("user:42"))
//	h.Count() // ~1
//
// # Hashing
//
// Sketches consume 64-bit element hashes. Hash and HashString produce them
// with xxHash64; every structure also offers an AddBytes/SetBytes variant that
// hashes for the caller. Bloom filters and MinHash derive their probe and
// register positions from the element hash with a seeded 128-bit murmur3 mix,
// so structures built with different seeds (WithSeed) are incompatible and
// every binary operation rejects them with ErrShapeMismatch.
//
// # Error Handling
//
// Errors wrap one of four sentinels and carry detail in typed errors:
//
//	_, err := a.Union(b)
//	if errors.Is(err, twiddle.ErrSizeMismatch) {
//	    var se *twiddle.SizeError
//	    errors.As(err, &se) // se.Expected, se.Actual
//	}
//
// Validation happens before mutation: a failed in-place operation leaves its
// receiver untouched.
//
// # Observability
//
// Structures accept a *Logger (log/slog) and a MetricsCollector:
//
//	m := &twiddle.BasicMetricsCollector{}
//	a2, _ := bloom.NewA2(1<<16, 4, 0.5,
//	    twiddle.WithLogger(twiddle.NewJSONLogger(slog.LevelDebug)),
//	    twiddle.WithMetrics(m),
//	)
//	// ... m.GetStats().Rotations
//
// Both default to no-ops.
//
// # Thread Safety
//
// Structures are plain values without internal locking. Concurrent reads are
// safe; mutation requires external synchronization. The Union helpers in hll
// and minhash merge concurrently into fresh values and never mutate their
// inputs.
package twiddle
