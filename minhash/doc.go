// Package minhash provides MinHash signatures for Jaccard similarity estimation.
//
// A signature of n registers summarizes a set of 64-bit hashes. Two signatures
// built with the same length and seed can be compared with Estimate, which
// returns the fraction of equal registers, and merged with Merge, which yields
// the signature of the union.
//
// # Example Usage
//
//	a, _ := minhash.New(256)
//	b, _ := minhash.New(256)
//	for _, w := range strings.Fields("the quick brown fox") {
//	    a.AddBytes([]byte(w))
//	}
//	for _, w := range strings.Fields("the quick red fox") {
//	    b.AddBytes([]byte(w))
//	}
//	j, _ := a.Estimate(b) // ~0.6
package minhash
