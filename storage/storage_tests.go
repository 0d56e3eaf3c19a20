package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCheckpointStore tests a CheckpointStore implementation against the
// interface. The store must be empty.
func TestCheckpointStore(t *testing.T, s CheckpointStore) {
	names, err := s.Names()
	require.Nil(t, err)
	require.Empty(t, names)

	// Test ErrDNE for non-existent streams.
	_, err = s.Get("a")
	require.Equal(t, ErrResourceDoesNotExist, err)
	require.Equal(t, ErrResourceDoesNotExist, s.Delete("a"))

	a := Checkpoint{Engine: "mt19937", Options: "seed: 7\n", Position: 42}
	b := Checkpoint{Engine: "pcg32", Position: -3}

	require.Nil(t, s.Put("a", a))
	require.Nil(t, s.Put("b", b))

	got, err := s.Get("a")
	require.Nil(t, err)
	require.Equal(t, a, got)

	got, err = s.Get("b")
	require.Nil(t, err)
	require.Equal(t, b, got)

	names, err = s.Names()
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, names)

	// Put replaces.
	a.Position = 43
	require.Nil(t, s.Put("a", a))
	got, err = s.Get("a")
	require.Nil(t, err)
	require.Equal(t, a, got)

	require.Nil(t, s.Delete("a"))
	_, err = s.Get("a")
	require.Equal(t, ErrResourceDoesNotExist, err)

	names, err = s.Names()
	require.Nil(t, err)
	require.Equal(t, []string{"b"}, names)

	require.Nil(t, s.Delete("b"))

	testLock(t, s)

	e := s.Stop().Wait()
	require.Empty(t, e)
}

func testLock(t *testing.T, s CheckpointStore) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		max     int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := s.Lock("locked")
			require.Nil(t, err)

			mu.Lock()
			holders++
			if holders > max {
				max = holders
			}
			mu.Unlock()

			mu.Lock()
			holders--
			mu.Unlock()

			require.Nil(t, unlock())
		}()
	}
	wg.Wait()
	require.Equal(t, 1, max)

	unlock, err := s.Lock("locked")
	require.Nil(t, err)
	require.Nil(t, unlock())
	require.Equal(t, ErrLockNotHeld, unlock())
}
