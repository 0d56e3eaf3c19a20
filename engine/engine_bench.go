package engine

import "testing"

// BenchmarkNext measures forward stepping.
func BenchmarkNext[T Word](b *testing.B, e Engine[T]) {
	var k T
	for i := 0; i < b.N; i++ {
		k = e.Next()
	}
	_ = k
}

// BenchmarkPrev measures backward stepping. The engine is first advanced
// b.N steps so that every rewind stays within its history.
func BenchmarkPrev[T Word](b *testing.B, e Engine[T]) {
	e.Discard(uint64(b.N))
	b.ResetTimer()
	var k T
	for i := 0; i < b.N; i++ {
		k = e.Prev()
	}
	_ = k
}
