package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Factory creates a fresh engine. Two engines from the same Factory must be
// in identical states.
type Factory[T Word] func() Engine[T]

// TestEngine tests an Engine implementation against the interface. n should
// exceed the engine's internal buffer or block size so that both wrap
// around and regeneration are crossed.
func TestEngine[T Word](t *testing.T, f Factory[T], n int) {
	TestRoundTrip(t, f, n)
	TestPartialRewind(t, f, n)
	TestRange(t, f, n)
	TestDiscard(t, f, n)
}

// TestRoundTrip steps n times forward then n times backward and requires
// the values to replay in reverse and the state to be restored exactly.
func TestRoundTrip[T Word](t *testing.T, f Factory[T], n int) {
	e, start := f(), f()
	require.Equal(t, start, e, "factory must be deterministic")

	fwd := make([]T, n)
	for i := range fwd {
		fwd[i] = e.Next()
	}
	for i := n - 1; i >= 0; i-- {
		if v := e.Prev(); v != fwd[i] {
			require.Equal(t, fwd[i], v, "value %d of %d differs after rewinding", i, n)
		}
	}
	require.Equal(t, start, e, "state differs after %d steps forward and back", n)

	for i := range fwd {
		if v := e.Next(); v != fwd[i] {
			require.Equal(t, fwd[i], v, "value %d of %d differs on replay", i, n)
		}
	}
}

// TestPartialRewind interleaves forward and backward runs of different
// lengths.
func TestPartialRewind[T Word](t *testing.T, f Factory[T], n int) {
	e, ref := f(), f()
	want := make([]T, n+1)
	for i := range want {
		want[i] = ref.Next()
	}

	pos := 0
	for _, step := range []int{n / 2, -n / 3, n / 2, -n / 2, n / 3} {
		for ; step > 0; step-- {
			if v := e.Next(); v != want[pos] {
				require.Equal(t, want[pos], v, "forward value %d differs", pos)
			}
			pos++
		}
		for ; step < 0; step++ {
			pos--
			if v := e.Prev(); v != want[pos] {
				require.Equal(t, want[pos], v, "backward value %d differs", pos)
			}
		}
	}
	require.Equal(t, want[pos], e.Peek())
}

// TestRange requires every value to lie within [Min, Max].
func TestRange[T Word](t *testing.T, f Factory[T], n int) {
	e := f()
	lo, hi := e.Min(), e.Max()
	require.True(t, lo < hi)
	for i := 0; i < n; i++ {
		v := e.Next()
		if v < lo || v > hi {
			require.FailNow(t, "value out of range", "value %d outside [%d, %d]", v, lo, hi)
		}
	}
}

// TestDiscard requires Discard(k) to behave like k calls to Next.
func TestDiscard[T Word](t *testing.T, f Factory[T], n int) {
	for _, k := range []int{0, 1, n/2 + 1, n} {
		a, b := f(), f()
		a.Discard(uint64(k))
		for i := 0; i < k; i++ {
			b.Next()
		}
		require.Equal(t, b.Next(), a.Next(), "discard(%d)", k)
		require.Equal(t, b, a)
	}
}

// TestKnownAnswers requires the first values of e to match want.
func TestKnownAnswers[T Word](t *testing.T, e Engine[T], want []T) {
	got := make([]T, len(want))
	for i := range got {
		got[i] = e.Next()
	}
	require.Equal(t, want, got)
}

// TestNth requires the n-th value (1-based) of e to equal want.
func TestNth[T Word](t *testing.T, e Engine[T], n uint64, want T) {
	e.Discard(n - 1)
	require.Equal(t, want, e.Next())
}
