// Package hll provides cardinality sketches over 64-bit hashes.
//
// HyperLogLog keeps 2^p registers (4 <= p <= 18) and estimates distinct
// counts with a standard error of about 1.04/sqrt(2^p), using linear counting
// for small cardinalities and the 32-bit large-range correction. Sketches of
// equal precision merge losslessly: the merge of two sketches equals the sketch
// of the union of their inputs.
//
// HyperBitBit is a fixed 17-byte sketch for cases where memory matters more
// than accuracy.
//
// # Example Usage
//
//	a, _ := hll.New(14)
//	b, _ := hll.New(14)
//	for i := 0; i < 1000; i++ {
//	    a.AddBytes([]byte(strconv.Itoa(i)))
//	    b.AddBytes([]byte(strconv.Itoa(i + 500)))
//	}
//	u, _ := a.Merge(b)
//	u.Count() // ~1500
//
//	all, _ := hll.Union(ctx, shards...) // bounded-parallel merge of many sketches
//
// Add takes an already computed 64-bit hash and uses it as is; callers feeding
// raw keys should use AddBytes.
package hll
