package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryChainStore(t *testing.T) {
	s := NewMemoryChainStore()

	height, err := s.Height()
	require.NoError(t, err)
	require.Equal(t, uint64(0), height)

	_, ok, err := s.Get(0)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(0, []byte("genesis")))

	height, err = s.Height()
	require.NoError(t, err)
	require.Equal(t, uint64(1), height)

	blob, ok, err := s.Get(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("genesis"), blob)

	// Put is idempotent for a given (index, blob) pair.
	require.NoError(t, s.Put(0, []byte("genesis")))
	height, err = s.Height()
	require.NoError(t, err)
	require.Equal(t, uint64(1), height)

	require.NoError(t, s.Put(5, []byte("block-5")))
	height, err = s.Height()
	require.NoError(t, err)
	require.Equal(t, uint64(6), height)
}
