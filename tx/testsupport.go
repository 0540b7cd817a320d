package tx

import "github.com/frgk/poacore/blockchain"

// NewSignedTransfer builds and signs a Transfer from priv to to,
// mirroring the teacher's mocks.GenerateValidTransaction helper:
// tests need a one-call way to produce a transaction that will pass
// Validate without hand-assembling signing bytes every time.
func NewSignedTransfer(priv *blockchain.PrivateKey, to blockchain.Address, amount, nonce uint64) *Transfer {
	pub := blockchain.DerivePublicKey(priv)
	t := &Transfer{
		FromPubKey: pub.SerializeCompressed(),
		To:         to,
		Amount:     amount,
		Nonce:      nonce,
	}
	t.Sign(priv)
	return t
}

// NewCoinbase builds an unsigned issuance transaction, mirroring the
// teacher's genesis coinbase pattern.
func NewCoinbase(to blockchain.Address, amount uint64) *Transfer {
	return &Transfer{To: to, Amount: amount}
}
