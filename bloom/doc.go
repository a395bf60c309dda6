// Package bloom provides fixed-size Bloom filters over 64-bit element hashes.
//
// Filter is the classic structure: k probe positions per element, derived by
// double hashing from a seeded 128-bit murmur3 mix of the element hash. It
// answers membership with no false negatives and a false positive rate of
// roughly Density()^k.
//
// A2 is an aging filter built from two Filters. Writes go to the active array;
// once its density reaches the configured threshold the next Set clears the
// stale array and swaps roles. Lookups consult both, so an element stays
// visible for at least one full generation after it was inserted, and the
// false positive rate stays bounded on unbounded streams.
//
// # Example Usage
//
//	f, _ := bloom.New(1024, 4)
//	for _, h := range []uint64{1, 2, 3} {
//	    f.Set(h)
//	}
//	f.Test(2) // true
//
//	g, _ := bloom.New(1024, 4)
//	g.Set(3)
//	both, _ := f.Intersection(g)
//	both.Test(3) // true
//
//	a, _ := bloom.NewA2(1<<16, 4, 0.5, twiddle.WithLogger(twiddle.NewTextLogger(slog.LevelDebug)))
//	a.SetBytes([]byte("session-42"))
//	a.TestBytes([]byte("session-42")) // true until two rotations later
//
// Operands of binary operations must agree on size (twiddle.ErrSizeMismatch)
// and on k, seed and, for A2, density threshold (twiddle.ErrShapeMismatch).
package bloom
