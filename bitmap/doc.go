// Package bitmap provides a fixed-size dense bitmap.
//
// Bitmap is the exact set representation underneath the Bloom filters and the
// reference the run-length encoded bitmap (package rle) is tested against.
// Storage is a contiguous []uint64 word array; bits past Size() in the last
// word are kept at zero so Count, Equal and Negate never see padding.
//
// # Example Usage
//
//	b, _ := bitmap.New(16)
//	for _, i := range []uint64{0, 3, 4, 5, 9} {
//	    _ = b.Set(i)
//	}
//	b.Count()         // 5
//	b.Density()       // 0.3125
//	b.FindFirstZero() // 1
//
//	other, _ := bitmap.FromIndices(16, []uint64{1, 2})
//	u, _ := b.Union(other)      // new bitmap
//	_ = b.IntersectWith(other)  // in place
//
// Binary operations require both operands to have the same size and fail with
// twiddle.ErrSizeMismatch otherwise; the receiver is untouched on failure.
//
// Interop with roaring bitmaps (FromRoaring, ToRoaring) covers 32-bit universes.
package bitmap
