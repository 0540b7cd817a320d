package blockchain

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Digest is the fixed-width output of the core's hash function.
type Digest [32]byte

// Address is the derived identity of a public key: the low 20 bytes of
// the hash of its compressed serialization.
type Address [20]byte

// ZeroAddress is the origin carried by the genesis block.
var ZeroAddress = Address{}

type PrivateKey = secp256k1.PrivateKey
type PublicKey = secp256k1.PublicKey

// PoA carries the consensus parameters the core treats as an opaque,
// read-only value supplied by a configuration collaborator.
type PoA struct {
	ValidatorSet    []Address
	BlockPeriod     uint64
	GenerationLimit uint64
	SigningLimit    uint64
	Threshold       uint64
	MinTxs          uint64
}

// IsValidator reports whether addr is a member of the validator set.
func (p PoA) IsValidator(addr Address) bool {
	for _, v := range p.ValidatorSet {
		if v == addr {
			return true
		}
	}
	return false
}

// BlockSignature is a detached signature plus the signer's compressed
// public key and derived address. The public key travels with the
// signature because an address alone cannot be used to recover a key
// to verify against — ValidateBlock needs it to check the signature
// cryptographically, not just compare addresses. Two signatures are
// equal iff all three fields match.
type BlockSignature struct {
	Signature  []byte
	SignerPub  []byte
	SignerAddr Address
}

// Equal implements the value-equality contract used by the set-by-value
// semantics of Block.Signatures.
func (s BlockSignature) Equal(other BlockSignature) bool {
	if s.SignerAddr != other.SignerAddr {
		return false
	}
	if !bytesEqual(s.Signature, other.Signature) {
		return false
	}
	if !bytesEqual(s.SignerPub, other.SignerPub) {
		return false
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Less implements the total order used to canonicalize a signature set:
// signature bytes first, then address.
func (s BlockSignature) Less(other BlockSignature) bool {
	if bytesLess(s.Signature, other.Signature) {
		return true
	}
	if bytesLess(other.Signature, s.Signature) {
		return false
	}
	return bytesLess(s.SignerAddr[:], other.SignerAddr[:])
}

func bytesLess(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// BlockHeader is the signed, hashed part of a block.
type BlockHeader struct {
	Origin     Address
	PrevHash   []byte
	MerkleRoot []byte
	Timestamp  int64
	Consensus  PoA
}

// Block is an indexed, signed commitment to an ordered transaction list.
type Block struct {
	Index        uint64
	Header       BlockHeader
	Signatures   []BlockSignature
	Transactions []Transaction
}

// TxContext is what a transaction's validity predicate is parameterised
// by: the timestamp of the block that contains it.
type TxContext struct {
	BlockTimestamp int64
}

// Transaction is the core's sole external collaborator among the data
// types: it never knows the concrete shape of a transaction, only that
// one can hash itself, validate itself against the containing block's
// timestamp, and produce the canonical bytes the block codec embeds.
type Transaction interface {
	Hash() string
	Validate(ctx TxContext) error
	Encode() []byte
}

// TxDecoder reconstructs a concrete Transaction from its canonical bytes.
// Decoding a Block is necessarily parameterised by one of these, since
// Transaction is opaque to the core.
type TxDecoder func([]byte) (Transaction, error)

// Clock is the sole I/O collaborator of the builder.
type Clock interface {
	Now() int64
}
