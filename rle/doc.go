// Package rle provides a run-length encoded bitmap.
//
// The bitmap is stored as an ordered slice of (value, length) runs covering
// exactly Size() bits. Clustered or very sparse bit patterns compress to a few
// runs, and union/intersection/xor are single linear merges over both run
// lists, so their cost depends on the number of runs and not on Size().
//
// # Construction Contract
//
// The encoding is semi-mutable: Set and SetRange only append above the highest
// set bit. A position at or below it fails with ErrOutOfOrder (setting a bit
// that is already set is accepted as a no-op). Clearing single bits is not
// supported; Zero, Fill and Negate rewrite the whole run list.
//
// Arbitrary index sets go through FromIndices, which sorts first:
//
//	b, _ := rle.FromIndices(1<<20, []uint64{900, 3, 4, 5})
//	b.Runs() // [{false 3} {true 3} {false 894} {true 1} {false 1047675}]
//
// Dense bitmaps and roaring bitmaps convert with FromBitmap/ToBitmap and
// FromRoaring.
package rle
