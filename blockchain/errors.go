package blockchain

import "fmt"

// The validation error taxonomy is closed: every rejection a candidate
// block can suffer is one of the tagged variants below. Callers can
// type-switch on these to decide whether to discard a peer's block,
// replay from disk, or halt — the core never recovers from one itself.

type InvalidBlockSignature struct {
	SignerAddr Address
}

func (e InvalidBlockSignature) Error() string {
	return fmt.Sprintf("signature by %x does not verify against header hash", e.SignerAddr)
}

type InvalidBlockSigner struct {
	SignerAddr Address
}

func (e InvalidBlockSigner) Error() string {
	return fmt.Sprintf("signer %x is not a member of the validator set", e.SignerAddr)
}

type InvalidBlockOrigin struct {
	Origin Address
}

func (e InvalidBlockOrigin) Error() string {
	return fmt.Sprintf("origin %x is not a member of the validator set", e.Origin)
}

type InvalidPrevBlockHash struct {
	Declared []byte
	Computed []byte
}

func (e InvalidPrevBlockHash) Error() string {
	return fmt.Sprintf("declared prev hash %x does not match computed %x", e.Declared, e.Computed)
}

type InvalidBlockTimestamp struct {
	Timestamp int64
}

func (e InvalidBlockTimestamp) Error() string {
	return fmt.Sprintf("timestamp %d does not exceed the median of the preceding window", e.Timestamp)
}

type InvalidMedianTimestamp struct {
	Reason string
}

func (e InvalidMedianTimestamp) Error() string {
	return fmt.Sprintf("median timestamp computation failed: %s", e.Reason)
}

// ErrEmptyWindow is the specific InvalidMedianTimestamp a caller gets
// when MedianTimestamp is asked to summarize zero blocks.
var ErrEmptyWindow = InvalidMedianTimestamp{Reason: "empty window"}

type InvalidBlockMerkleRoot struct {
	Index    uint64
	Computed []byte
	Declared []byte
}

func (e InvalidBlockMerkleRoot) Error() string {
	return fmt.Sprintf("block %d: declared merkle root %x does not match computed %x", e.Index, e.Declared, e.Computed)
}

type InvalidBlockTx struct {
	Index  int
	Reason error
}

func (e InvalidBlockTx) Error() string {
	return fmt.Sprintf("transaction %d invalid: %v", e.Index, e.Reason)
}

// InvalidBlockIndex is the structural completion spec.md §4.5 rule 5
// names but does not give a dedicated taxonomy row: the candidate's
// index is not exactly one greater than its predecessor's.
type InvalidBlockIndex struct {
	Declared uint64
	Expected uint64
}

func (e InvalidBlockIndex) Error() string {
	return fmt.Sprintf("block index %d is not one greater than predecessor index (expected %d)", e.Declared, e.Expected)
}
