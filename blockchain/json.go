package blockchain

import "encoding/hex"

// blockJSON is the non-authoritative human-inspection projection of a
// block described in spec.md §6.1. The canonical encoding produced by
// EncodeBlock remains the source of truth for hashing and persistence;
// this type exists only so a block can be rendered or logged legibly.
type blockJSON struct {
	Index        uint64            `json:"index"`
	Header       headerJSON        `json:"header"`
	Signatures   []signatureJSON   `json:"signatures"`
	Transactions []string          `json:"transactions"`
}

type headerJSON struct {
	Origin     string `json:"origin"`
	PrevHash   string `json:"prevHash"`
	MerkleRoot string `json:"merkleRoot"`
	Timestamp  int64  `json:"timestamp"`
}

type signatureJSON struct {
	Signature  string `json:"signature"`
	SignerAddr string `json:"signerAddr"`
}

// ToJSONProjection converts a Block into its human-readable projection.
// Transactions are rendered by their own stable hash, since the core
// has no visibility into a concrete transaction's JSON shape.
func ToJSONProjection(b Block) blockJSON {
	sigs := make([]signatureJSON, len(b.Signatures))
	for i, s := range b.Signatures {
		sigs[i] = signatureJSON{
			Signature:  hex.EncodeToString(s.Signature),
			SignerAddr: hex.EncodeToString(s.SignerAddr[:]),
		}
	}
	txs := make([]string, len(b.Transactions))
	for i, tx := range b.Transactions {
		txs[i] = tx.Hash()
	}
	return blockJSON{
		Index: b.Index,
		Header: headerJSON{
			Origin:     hex.EncodeToString(b.Header.Origin[:]),
			PrevHash:   hex.EncodeToString(b.Header.PrevHash),
			MerkleRoot: hex.EncodeToString(b.Header.MerkleRoot),
			Timestamp:  b.Header.Timestamp,
		},
		Signatures:   sigs,
		Transactions: txs,
	}
}
