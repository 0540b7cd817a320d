package blockchain

// Genesis builds the first block of a chain: index 0, no signatures, no
// transactions, prevHash carrying the externally supplied seed verbatim
// (the spec treats the seed as opaque — it is not itself hashed), and
// origin the zero address since no validator authored it.
func Genesis(seed []byte, timestamp int64, poa PoA) Block {
	empty := MerkleRootOfTransactions(nil)
	return Block{
		Index: 0,
		Header: BlockHeader{
			Origin:     ZeroAddress,
			PrevHash:   seed,
			MerkleRoot: empty[:],
			Timestamp:  timestamp,
			Consensus:  poa,
		},
		Signatures:   nil,
		Transactions: nil,
	}
}
