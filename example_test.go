package twiddle_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/twiddle"
	"github.com/hupe1980/twiddle/bitmap"
	"github.com/hupe1980/twiddle/bloom"
	"github.com/hupe1980/twiddle/hll"
	"github.com/hupe1980/twiddle/minhash"
	"github.com/hupe1980/twiddle/rle"
)

// Example_bitmap demonstrates the dense bitmap queries.
func Example_bitmap() {
	b, err := bitmap.FromIndices(16, []uint64{0, 3, 4, 5, 9})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(b.Count(), b.Density(), b.FindFirstZero(), b.FindFirstBit())
	// Output: 5 0.3125 1 0
}

// Example_rle demonstrates monotonic construction of a run-length encoded bitmap.
func Example_rle() {
	b, err := rle.New(16)
	if err != nil {
		log.Fatal(err)
	}
	for _, i := range []uint64{0, 3, 4, 5, 9} {
		if err := b.Set(i); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(b.Count(), len(b.Runs()))

	err = b.Set(2)
	fmt.Println(errors.Is(err, rle.ErrOutOfOrder))
	// Output:
	// 5 6
	// true
}

// Example_bloom demonstrates Bloom filter set algebra.
func Example_bloom() {
	a, _ := bloom.New(1024, 4)
	b, _ := bloom.New(1024, 4)
	for _, h := range []uint64{1, 2, 3} {
		a.Set(h)
	}
	for _, h := range []uint64{3, 4, 5} {
		b.Set(h)
	}

	inter, _ := a.Intersection(b)
	union, _ := a.Union(b)

	fmt.Println(inter.Test(3))
	fmt.Println(union.Test(1), union.Test(5))
	// Output:
	// true
	// true true
}

// Example_sizeMismatch demonstrates the typed errors of binary operations.
func Example_sizeMismatch() {
	a, _ := bitmap.New(16)
	b, _ := bitmap.New(32)

	_, err := a.Union(b)

	var se *twiddle.SizeError
	if errors.As(err, &se) {
		fmt.Println(se.Expected, se.Actual, errors.Is(err, twiddle.ErrSizeMismatch))
	}
	// Output: 16 32 true
}

// Example_a2 demonstrates rotation metrics of the aging Bloom filter.
func Example_a2() {
	m := &twiddle.BasicMetricsCollector{}
	f, _ := bloom.NewA2(256, 3, 0.25, twiddle.WithMetrics(m))

	for i := 0; i < 1000; i++ {
		f.SetBytes(fmt.Appendf(nil, "event-%d", i))
	}

	fmt.Println(f.State(), m.GetStats().Rotations == int64(f.Generation()))
	// Output: migrating true
}

// Example_hyperLogLog demonstrates cardinality estimation across shards.
func Example_hyperLogLog() {
	shards := make([]*hll.HyperLogLog, 4)
	for s := range shards {
		shards[s], _ = hll.New(14)
		for i := 0; i < 1000; i++ {
			// Shards overlap by half.
			shards[s].AddBytes(fmt.Appendf(nil, "user-%d", s*500+i))
		}
	}

	all, err := hll.Union(context.Background(), shards...)
	if err != nil {
		log.Fatal(err)
	}

	est := all.Count()
	fmt.Println(est > 2400 && est < 2600)
	// Output: true
}

// Example_minHash demonstrates Jaccard similarity estimation.
func Example_minHash() {
	a, _ := minhash.New(128)
	b, _ := minhash.New(128)
	for i := 0; i < 100; i++ {
		a.AddBytes(fmt.Appendf(nil, "doc-%d", i))
		b.AddBytes(fmt.Appendf(nil, "doc-%d", i))
	}

	j, _ := a.Estimate(b)
	fmt.Println(j)
	// Output: 1
}
