package blockchain

// emptyMerkleRoot is the well-known constant returned for an empty leaf
// set; the zero digest, matching the genesis block's convention.
var emptyMerkleRoot = Digest{}

// MerkleRoot builds a binary hash tree over an ordered list of leaves,
// duplicating the last leaf at any level with an odd count, and returns
// the single remaining root. Leaves are expected to already be the
// base-16-encoded transaction hashes — interoperability hinges on
// hashing the hex text, not the raw digest bytes.
func MerkleRoot(leaves []string) Digest {
	if len(leaves) == 0 {
		return emptyMerkleRoot
	}

	level := make([]Digest, len(leaves))
	for i, leaf := range leaves {
		level[i] = Hash([]byte(leaf))
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]Digest, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			buf := make([]byte, 0, 64)
			buf = append(buf, level[i][:]...)
			buf = append(buf, level[i+1][:]...)
			next = append(next, Hash(buf))
		}
		level = next
	}
	return level[0]
}

// MerkleRootOfTransactions is the convenience wrapper the builder and
// validator both use: hash each transaction, hex-encode the hash, and
// commit to the resulting leaf list.
func MerkleRootOfTransactions(txs []Transaction) Digest {
	leaves := make([]string, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.Hash()
	}
	return MerkleRoot(leaves)
}
