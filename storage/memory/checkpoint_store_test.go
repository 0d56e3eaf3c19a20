package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/storage"
)

func TestCheckpointStore(t *testing.T) { storage.TestCheckpointStore(t, New()) }

func TestRegistered(t *testing.T) {
	s, err := storage.NewCheckpointStore(Name, nil)
	require.Nil(t, err)
	require.Nil(t, s.Put("x", storage.Checkpoint{Engine: "mt19937"}))
	require.Empty(t, s.Stop().Wait())

	require.Panics(t, func() { _ = s.Put("x", storage.Checkpoint{}) })

	_, err = storage.NewCheckpointStore("nope", nil)
	require.Equal(t, storage.ErrDriverDoesNotExist, err)
}

func TestLockDoesNotBlockStore(t *testing.T) {
	s := New()
	defer func() { s.Stop().Wait() }()

	unlock, err := s.Lock("a")
	require.Nil(t, err)

	require.Nil(t, s.Put("a", storage.Checkpoint{Engine: "mt19937", Position: 3}))
	cp, err := s.Get("a")
	require.Nil(t, err)
	require.Equal(t, int64(3), cp.Position)
	names, err := s.Names()
	require.Nil(t, err)
	require.Equal(t, []string{"a"}, names)

	other, err := s.Lock("b")
	require.Nil(t, err)
	require.Nil(t, other())
	require.Nil(t, unlock())
	require.Equal(t, storage.ErrLockNotHeld, unlock())
}
