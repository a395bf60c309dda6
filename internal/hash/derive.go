package hash

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Derive expands a 64-bit element hash into the two independent halves used
// by double hashing: probe j is h1 + j*h2.
//
// The input is re-hashed with seeded murmur3 so that weak caller hashes
// (small integers, identity hashes) still spread over the whole range.
func Derive(h uint64, seed uint32) (h1, h2 uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], h)
	return murmur3.Sum128WithSeed(buf[:], seed)
}

// Probe returns the j-th double-hashing position folded into [0, n).
func Probe(h1, h2, j, n uint64) uint64 {
	return (h1 + j*h2) % n
}
