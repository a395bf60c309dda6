// Package testutil provides testing utilities for twiddle.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for index sets and hash streams,
// and exact reference computations to check approximate structures against.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	idx := rng.Indices(100, 1<<16)       // 100 distinct indices, random order
//	sorted := rng.SortedIndices(100, 1<<16)
//	hs := rng.Hashes(10000)              // distinct, well-mixed 64-bit hashes
//
// # Reference Computations
//
//	j := testutil.Jaccard(a, b)          // exact Jaccard index
//	e := testutil.RelativeError(est, n)  // |est-n|/n
package testutil
