package blockchain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bc "github.com/frgk/poacore/blockchain"
	"github.com/frgk/poacore/tx"
)

// TestDecodeBlockRejectsTruncatedInput exercises spec.md §4.2's decoding-
// is-total invariant: bytes.Reader.Read returns a short, non-error read
// unless it is fully exhausted, so every decode helper must use
// io.ReadFull (or check n == len(buf)) rather than trust err == nil
// alone. A truncated buffer must fail, never silently decode short.
func TestDecodeBlockRejectsTruncatedInput(t *testing.T) {
	priv, err := bc.GeneratePrivateKey()
	require.NoError(t, err)
	validatorAddr := bc.DeriveAddress(bc.DerivePublicKey(priv))
	poa := bc.PoA{ValidatorSet: []bc.Address{validatorAddr}}
	genesis := bc.Genesis([]byte("seed"), 1000, poa)
	genesisHash := bc.HeaderHash(genesis.Header)

	b1, err := bc.NewBlock(bc.BlockCreationParams{
		Origin:       validatorAddr,
		PrevHash:     genesisHash[:],
		Index:        1,
		Transactions: []bc.Transaction{tx.NewCoinbase(bc.Address{0x01}, 10)},
		SigningKey:   priv,
		Consensus:    poa,
	})
	require.NoError(t, err)

	full := bc.EncodeBlock(b1)
	require.Greater(t, len(full), 1)

	for cut := 1; cut < len(full); cut++ {
		_, err := bc.DecodeBlock(full[:cut], tx.Decode)
		require.Errorf(t, err, "expected error decoding truncated input of length %d", cut)
	}
}

// TestDecodeHeaderRejectsTruncatedInput mirrors the above for a bare
// header, whose fixed-width and length-prefixed fields are read by the
// same helpers.
func TestDecodeHeaderRejectsTruncatedInput(t *testing.T) {
	poa := bc.PoA{ValidatorSet: []bc.Address{{0x01}}}
	header := bc.BlockHeader{
		Origin:     bc.Address{0x02},
		PrevHash:   []byte("prevhash"),
		MerkleRoot: []byte("merkleroot"),
		Timestamp:  1234,
		Consensus:  poa,
	}
	full := bc.EncodeHeader(header)
	require.Greater(t, len(full), 1)

	for cut := 1; cut < len(full); cut++ {
		_, err := bc.DecodeHeader(full[:cut])
		require.Errorf(t, err, "expected error decoding truncated header of length %d", cut)
	}
}

// TestDecodeBlockRejectsEmptyInput is the degenerate truncation: nothing
// at all to read.
func TestDecodeBlockRejectsEmptyInput(t *testing.T) {
	_, err := bc.DecodeBlock(nil, tx.Decode)
	require.Error(t, err)
}
