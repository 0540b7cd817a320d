package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frgk/poacore/blockchain"
)

func TestTransferSignAndValidate(t *testing.T) {
	priv, err := blockchain.GeneratePrivateKey()
	require.NoError(t, err)

	to := blockchain.Address{0x01, 0x02}
	transfer := NewSignedTransfer(priv, to, 100, 1)

	require.NoError(t, transfer.Validate(blockchain.TxContext{}))
}

func TestTransferValidateRejectsAmountChangedAfterSigning(t *testing.T) {
	priv, err := blockchain.GeneratePrivateKey()
	require.NoError(t, err)

	to := blockchain.Address{0x01}
	transfer := NewSignedTransfer(priv, to, 50, 0)
	transfer.Amount = 51 // mutate after signing

	require.Error(t, transfer.Validate(blockchain.TxContext{}))
}

func TestCoinbasePositiveAmountValid(t *testing.T) {
	coinbase := NewCoinbase(blockchain.Address{0x09}, 10_000_000)
	require.NoError(t, coinbase.Validate(blockchain.TxContext{}))
}

func TestCoinbaseZeroAmountInvalid(t *testing.T) {
	coinbase := NewCoinbase(blockchain.Address{0x09}, 0)
	require.Error(t, coinbase.Validate(blockchain.TxContext{}))
}

func TestTransferEncodeDecodeRoundTrip(t *testing.T) {
	priv, err := blockchain.GeneratePrivateKey()
	require.NoError(t, err)

	to := blockchain.Address{0x07, 0x08}
	original := NewSignedTransfer(priv, to, 42, 3)

	decoded, err := Decode(original.Encode())
	require.NoError(t, err)

	got := decoded.(*Transfer)
	require.Equal(t, original.FromPubKey, got.FromPubKey)
	require.Equal(t, original.To, got.To)
	require.Equal(t, original.Amount, got.Amount)
	require.Equal(t, original.Nonce, got.Nonce)
	require.Equal(t, original.Signature, got.Signature)
	require.Equal(t, original.Hash(), got.Hash())
}

// TestDecodeRejectsTruncatedInput exercises spec.md §4.2's decoding-is-
// total invariant for this collaborator's own Decode: bytes.Reader.Read
// returns a short, non-error read unless fully exhausted, so every cut
// of a well-formed encoding must fail rather than silently decode a
// wrong, shorter Transfer.
func TestDecodeRejectsTruncatedInput(t *testing.T) {
	priv, err := blockchain.GeneratePrivateKey()
	require.NoError(t, err)

	to := blockchain.Address{0x07, 0x08}
	original := NewSignedTransfer(priv, to, 42, 3)
	full := original.Encode()
	require.Greater(t, len(full), 1)

	for cut := 1; cut < len(full); cut++ {
		_, err := Decode(full[:cut])
		require.Errorf(t, err, "expected error decoding truncated input of length %d", cut)
	}
}

func TestDecodeRejectsEmptyInput(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
}
