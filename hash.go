package twiddle

import "github.com/cespare/xxhash/v2"

// Hash returns the 64-bit identity of key consumed by every structure.
// It is not a cryptographic hash.
func Hash(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// HashString is Hash for strings without an extra allocation.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}
