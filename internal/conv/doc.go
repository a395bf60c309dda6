// Package conv provides checked integer conversions.
//
// Capacities are uint64 throughout the public API while the bitset backend
// indexes with the platform uint and slices are sized with int. These
// helpers validate the narrowing once, at construction, so hot paths can use
// direct casts.
package conv
