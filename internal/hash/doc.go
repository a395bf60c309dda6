// Package hash provides the hash derivations shared by the probabilistic
// structures.
//
// # Double hashing
//
// Bloom filters need k bit positions and MinHash needs one candidate per
// register, all from a single 64-bit element hash. Instead of k independent
// hash functions, the element hash is expanded once into two 64-bit halves
// (h1, h2) with seeded murmur3, and the j-th position is h1 + j*h2.
//
//	h1, h2 := hash.Derive(h, seed)
//	for j := uint64(0); j < k; j++ {
//	    pos := hash.Probe(h1, h2, j, size)
//	}
//
// Kirsch and Mitzenmacher showed this keeps the asymptotic false positive
// rate of k independent functions.
package hash
