package blockchain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bc "github.com/frgk/poacore/blockchain"
)

func TestMerkleRootEmptyIsZeroDigest(t *testing.T) {
	root := bc.MerkleRoot(nil)
	require.Equal(t, bc.Digest{}, root)
}

func TestMerkleRootSingleLeafIsItsHash(t *testing.T) {
	root := bc.MerkleRoot([]string{"abc"})
	require.Equal(t, bc.Hash([]byte("abc")), root)
}

func TestMerkleRootOddLeafCountDuplicatesLast(t *testing.T) {
	three := bc.MerkleRoot([]string{"a", "b", "c"})
	fourDup := bc.MerkleRoot([]string{"a", "b", "c", "c"})
	require.Equal(t, fourDup, three)
}

func TestMerkleRootOrderSensitive(t *testing.T) {
	forward := bc.MerkleRoot([]string{"a", "b"})
	reversed := bc.MerkleRoot([]string{"b", "a"})
	require.NotEqual(t, forward, reversed)
}

func TestMerkleRootOfTransactionsEmpty(t *testing.T) {
	root := bc.MerkleRootOfTransactions(nil)
	require.Equal(t, bc.Digest{}, root)
}
