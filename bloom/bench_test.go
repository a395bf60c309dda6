package bloom

import (
	"testing"

	"github.com/hupe1980/twiddle/testutil"
)

func BenchmarkFilter_Set(b *testing.B) {
	f, _ := New(1<<20, 7)
	hashes := testutil.Stream(0, 4096)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Set(hashes[i&4095])
	}
}

func BenchmarkFilter_Test(b *testing.B) {
	hashes := testutil.Stream(0, 4096)
	f, _ := New(1<<20, 7)
	for _, h := range hashes[:2048] {
		f.Set(h)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Test(hashes[i&4095])
	}
}

func BenchmarkA2_Set(b *testing.B) {
	a, _ := NewA2(1<<16, 4, 0.5)
	hashes := testutil.Stream(0, 1<<16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Set(hashes[i&(1<<16-1)])
	}
}
