// Package tx supplies a concrete Transaction the core's block package
// can build, hash, and validate against. The core imports nothing from
// here — it only ever sees the blockchain.Transaction interface —
// which is the point: this package is a collaborator, not part of the
// validated core.
package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"github.com/frgk/poacore/blockchain"
)

// Transfer moves value from one address to another, guarded by an
// account nonce the way the teacher's Transaction did — From/To/Amount/
// Nonce/Signature — generalized from ed25519 to the core's secp256k1
// primitives. FromPubKey is the sender's compressed public key; a nil
// FromPubKey marks an unsigned, coinbase-style issuance, which is a
// concern of this collaborator alone — the core never special-cases it.
type Transfer struct {
	FromPubKey []byte
	To         blockchain.Address
	Amount     uint64
	Nonce      uint64
	Signature  []byte
}

// SigningBytes is what gets signed and hashed: every field except the
// signature itself.
func (t *Transfer) SigningBytes() []byte {
	var buf bytes.Buffer
	writeLP(&buf, t.FromPubKey)
	buf.Write(t.To[:])
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], t.Amount)
	buf.Write(amt[:])
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], t.Nonce)
	buf.Write(nonce[:])
	return buf.Bytes()
}

// Hash is the stable hex-encoded transaction hash the Merkle tree
// commits to.
func (t *Transfer) Hash() string {
	digest := blockchain.Hash(t.SigningBytes())
	return hex.EncodeToString(digest[:])
}

// Validate checks the transaction in isolation: the amount must be
// positive; beyond that a coinbase issuance (empty FromPubKey) needs
// nothing more, otherwise the signature must verify. It never consults account
// balances or nonces — that is ledger execution, explicitly out of
// scope for the core (spec.md §1).
func (t *Transfer) Validate(ctx blockchain.TxContext) error {
	if t.Amount == 0 {
		return errors.New("transfer amount must be positive")
	}
	if len(t.FromPubKey) == 0 {
		return nil
	}
	pub, err := secp256k1.ParsePubKey(t.FromPubKey)
	if err != nil {
		return errors.Wrap(err, "transfer: malformed sender public key")
	}
	if !VerifySignature(pub, t) {
		return errors.New("transfer: signature does not verify")
	}
	return nil
}

// Encode is the canonical byte representation the block codec embeds.
func (t *Transfer) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(t.SigningBytes())
	writeLP(&buf, t.Signature)
	return buf.Bytes()
}

// Sign computes and attaches the detached signature for priv.
func (t *Transfer) Sign(priv *blockchain.PrivateKey) {
	t.Signature = blockchain.Sign(priv, t.SigningBytes())
}

// Decode reconstructs a Transfer from its canonical bytes, satisfying
// blockchain.TxDecoder.
func Decode(data []byte) (blockchain.Transaction, error) {
	r := bytes.NewReader(data)
	fromPubKey, err := readLP(r)
	if err != nil {
		return nil, errors.Wrap(err, "transfer: sender public key")
	}
	t := &Transfer{FromPubKey: fromPubKey}
	if _, err := io.ReadFull(r, t.To[:]); err != nil {
		return nil, errors.Wrap(err, "transfer: recipient")
	}
	var amt, nonce [8]byte
	if _, err := io.ReadFull(r, amt[:]); err != nil {
		return nil, errors.Wrap(err, "transfer: amount")
	}
	t.Amount = binary.BigEndian.Uint64(amt[:])
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return nil, errors.Wrap(err, "transfer: nonce")
	}
	t.Nonce = binary.BigEndian.Uint64(nonce[:])
	sig, err := readLP(r)
	if err != nil {
		return nil, errors.Wrap(err, "transfer: signature")
	}
	t.Signature = sig
	return t, nil
}

func writeLP(buf *bytes.Buffer, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	buf.Write(n[:])
	buf.Write(b)
}

func readLP(r *bytes.Reader) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(n[:])
	b := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// VerifySignature checks a Transfer's signature against the given
// public key.
func VerifySignature(pub *blockchain.PublicKey, t *Transfer) bool {
	sig, err := ecdsa.ParseDERSignature(t.Signature)
	if err != nil {
		return false
	}
	digest := blockchain.Hash(t.SigningBytes())
	return sig.Verify(digest[:], pub)
}
