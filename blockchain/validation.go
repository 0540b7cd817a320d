package blockchain

import "bytes"

// ValidateBlock checks a single candidate against its predecessor and a
// medianTs already computed over the trailing window, in the exact
// order spec'd: transaction validity, Merkle commitment, timestamp,
// previous-hash linkage, index succession, signer authority (each
// signature's declared public key derives its declared address and
// verifies against the header hash, and that address is a validator),
// then origin membership. The first failing rule short-circuits the
// rest.
func ValidateBlock(medianTs int64, predecessor Block, candidate Block) error {
	if err := VerifyStoredBlockIntegrity(candidate); err != nil {
		return err
	}

	computedRoot := MerkleRootOfTransactions(candidate.Transactions)
	if !bytes.Equal(computedRoot[:], candidate.Header.MerkleRoot) {
		return InvalidBlockMerkleRoot{
			Index:    candidate.Index,
			Computed: computedRoot[:],
			Declared: candidate.Header.MerkleRoot,
		}
	}

	if candidate.Header.Timestamp <= medianTs {
		return InvalidBlockTimestamp{Timestamp: candidate.Header.Timestamp}
	}

	predecessorHash := HeaderHash(predecessor.Header)
	if !bytes.Equal(candidate.Header.PrevHash, predecessorHash[:]) {
		return InvalidPrevBlockHash{
			Declared: candidate.Header.PrevHash,
			Computed: predecessorHash[:],
		}
	}

	if candidate.Index != predecessor.Index+1 {
		return InvalidBlockIndex{Declared: candidate.Index, Expected: predecessor.Index + 1}
	}

	poa := candidate.Header.Consensus
	for _, sig := range candidate.Signatures {
		pub, err := ParsePublicKey(sig.SignerPub)
		if err != nil {
			return InvalidBlockSignature{SignerAddr: sig.SignerAddr}
		}
		if DeriveAddress(pub) != sig.SignerAddr {
			return InvalidBlockSignature{SignerAddr: sig.SignerAddr}
		}
		if err := VerifyBlockSig(pub, sig.Signature, candidate); err != nil {
			return err
		}
		if !poa.IsValidator(sig.SignerAddr) {
			return InvalidBlockSigner{SignerAddr: sig.SignerAddr}
		}
	}

	if !poa.IsValidator(candidate.Header.Origin) {
		return InvalidBlockOrigin{Origin: candidate.Header.Origin}
	}

	return nil
}

// VerifyStoredBlockIntegrity re-validates every transaction in a block
// against the block's own timestamp. A caller that reads a block back
// from storage owes it at least this much re-checking before trusting
// it — the same transaction-validity rule ValidateBlock runs first for
// a freshly forged candidate, pulled out here so a storage reader can
// run it without first reconstructing a predecessor/medianTs context.
func VerifyStoredBlockIntegrity(b Block) error {
	ctx := TxContext{BlockTimestamp: b.Header.Timestamp}
	for i, tx := range b.Transactions {
		if err := tx.Validate(ctx); err != nil {
			return InvalidBlockTx{Index: i, Reason: err}
		}
	}
	return nil
}

// VerifyBlockSig verifies a single signature against a block's header
// hash under pub, independent of signer-authority/validator-set checks.
func VerifyBlockSig(pub *PublicKey, sig []byte, block Block) error {
	h := HeaderHash(block.Header)
	if !Verify(pub, sig, h[:]) {
		addr := DeriveAddress(pub)
		return InvalidBlockSignature{SignerAddr: addr}
	}
	return nil
}

// windowSize is the trailing span medianTimestamp summarizes.
const windowSize = 11

// ValidateChain checks an entire history inductively: blocks are sorted
// descending by index, then for each position i>0 the candidate at
// i-1 is validated against the predecessor at i and the median of the
// up-to-11 blocks starting at i. The first failure anywhere wins.
func ValidateChain(blocks []Block) error {
	if len(blocks) == 0 {
		return nil
	}

	sorted := SortByIndex(blocks)
	desc := make([]Block, len(sorted))
	for i, b := range sorted {
		desc[len(sorted)-1-i] = b
	}

	for i := 1; i < len(desc); i++ {
		candidate := desc[i-1]
		predecessor := desc[i]

		end := i + windowSize
		if end > len(desc) {
			end = len(desc)
		}
		window := desc[i:end]

		medianTs, err := MedianTimestamp(window)
		if err != nil {
			return InvalidMedianTimestamp{Reason: err.Error()}
		}

		if err := ValidateBlock(medianTs, predecessor, candidate); err != nil {
			return err
		}
	}
	return nil
}
