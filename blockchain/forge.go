package blockchain

import "time"

// BlockCreationParams gathers everything NewBlock needs from its
// caller: the chain position being extended, the transaction batch,
// the signing key of the authoring validator, and the PoA parameters
// in force. index and prevHash are the caller's responsibility to keep
// consistent with chain state — the builder does not consult storage.
type BlockCreationParams struct {
	Origin       Address
	PrevHash     []byte
	Index        uint64
	Transactions []Transaction
	SigningKey   *PrivateKey
	Consensus    PoA
	Clock        Clock
}

// NewBlock builds and signs a block. The only side effect is the single
// clock read; everything else is pure computation over the supplied
// parameters. The returned block always satisfies invariants 1 and 2
// against the supplied prevHash, and its lone embedded signature always
// verifies — callers still owe index/prevHash chain consistency.
func NewBlock(params BlockCreationParams) (Block, error) {
	clock := params.Clock
	if clock == nil {
		clock = RealClock{}
	}
	timestamp := clock.Now()

	merkleRoot := MerkleRootOfTransactions(params.Transactions)

	header := BlockHeader{
		Origin:     params.Origin,
		PrevHash:   params.PrevHash,
		MerkleRoot: merkleRoot[:],
		Timestamp:  timestamp,
		Consensus:  params.Consensus,
	}

	h := HeaderHash(header)
	sig := Sign(params.SigningKey, h[:])
	pub := DerivePublicKey(params.SigningKey)
	signerAddr := DeriveAddress(pub)

	return Block{
		Index:  params.Index,
		Header: header,
		Signatures: []BlockSignature{
			{Signature: sig, SignerPub: pub.SerializeCompressed(), SignerAddr: signerAddr},
		},
		Transactions: params.Transactions,
	}, nil
}

// HeaderHash is the block's identity: the digest of its header's
// canonical encoding.
func HeaderHash(h BlockHeader) Digest {
	return Hash(EncodeHeader(h))
}

// SortByIndex returns a copy of blocks ordered ascending by index.
func SortByIndex(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Index > out[j].Index; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// RealClock is the production Clock collaborator.
type RealClock struct{}

func (RealClock) Now() int64 {
	return time.Now().Unix()
}
