package blockchain

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// ErrDecode is wrapped by every malformed-input failure the codec
// produces; decoding is total, so every reachable byte string either
// round-trips or fails with this.
var ErrDecode = errors.New("canonical decode failed")

func writeUint64(buf *bytes.Buffer, n uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	buf.Write(b[:])
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(ErrDecode, "uint64: "+err.Error())
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func writeUint32(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(ErrDecode, "uint32: "+err.Error())
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// writeLP writes a length-prefixed byte string: a uint32 big-endian
// length followed by the bytes themselves.
func writeLP(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func readLP(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, errors.Wrap(ErrDecode, "length-prefixed bytes: "+err.Error())
		}
	}
	return b, nil
}

func writeAddress(buf *bytes.Buffer, a Address) {
	buf.Write(a[:])
}

func readAddress(r *bytes.Reader) (Address, error) {
	var a Address
	if _, err := io.ReadFull(r, a[:]); err != nil {
		return a, errors.Wrap(ErrDecode, "address: "+err.Error())
	}
	return a, nil
}

// EncodePoA is the canonical encoding of a PoA consensus record. The
// validator set is a set conceptually, so it is sorted before encoding
// to keep the byte string deterministic regardless of insertion order.
func EncodePoA(p PoA) []byte {
	sorted := make([]Address, len(p.ValidatorSet))
	copy(sorted, p.ValidatorSet)
	sort.Slice(sorted, func(i, j int) bool { return bytesLess(sorted[i][:], sorted[j][:]) })

	var buf bytes.Buffer
	writeUint32(&buf, uint32(len(sorted)))
	for _, addr := range sorted {
		writeAddress(&buf, addr)
	}
	writeUint64(&buf, p.BlockPeriod)
	writeUint64(&buf, p.GenerationLimit)
	writeUint64(&buf, p.SigningLimit)
	writeUint64(&buf, p.Threshold)
	writeUint64(&buf, p.MinTxs)
	return buf.Bytes()
}

func decodePoA(r *bytes.Reader) (PoA, error) {
	count, err := readUint32(r)
	if err != nil {
		return PoA{}, err
	}
	validators := make([]Address, count)
	for i := range validators {
		addr, err := readAddress(r)
		if err != nil {
			return PoA{}, err
		}
		validators[i] = addr
	}
	blockPeriod, err := readUint64(r)
	if err != nil {
		return PoA{}, err
	}
	generationLimit, err := readUint64(r)
	if err != nil {
		return PoA{}, err
	}
	signingLimit, err := readUint64(r)
	if err != nil {
		return PoA{}, err
	}
	threshold, err := readUint64(r)
	if err != nil {
		return PoA{}, err
	}
	minTxs, err := readUint64(r)
	if err != nil {
		return PoA{}, err
	}
	return PoA{
		ValidatorSet:    validators,
		BlockPeriod:     blockPeriod,
		GenerationLimit: generationLimit,
		SigningLimit:    signingLimit,
		Threshold:       threshold,
		MinTxs:          minTxs,
	}, nil
}

// EncodeHeader is the canonical encoding of a BlockHeader: origin,
// length-prefixed prevHash, length-prefixed merkleRoot, fixed-width
// timestamp, then the recursive encoding of consensus.
func EncodeHeader(h BlockHeader) []byte {
	var buf bytes.Buffer
	writeAddress(&buf, h.Origin)
	writeLP(&buf, h.PrevHash)
	writeLP(&buf, h.MerkleRoot)
	writeUint64(&buf, uint64(h.Timestamp))
	buf.Write(EncodePoA(h.Consensus))
	return buf.Bytes()
}

func DecodeHeader(data []byte) (BlockHeader, error) {
	return decodeHeaderFromReader(bytes.NewReader(data))
}

// EncodeSignature is the canonical encoding of a BlockSignature:
// length-prefixed signature bytes, length-prefixed signer public key,
// then the signer's address.
func EncodeSignature(s BlockSignature) []byte {
	var buf bytes.Buffer
	writeLP(&buf, s.Signature)
	writeLP(&buf, s.SignerPub)
	writeAddress(&buf, s.SignerAddr)
	return buf.Bytes()
}

func decodeSignature(r *bytes.Reader) (BlockSignature, error) {
	sig, err := readLP(r)
	if err != nil {
		return BlockSignature{}, err
	}
	pub, err := readLP(r)
	if err != nil {
		return BlockSignature{}, err
	}
	addr, err := readAddress(r)
	if err != nil {
		return BlockSignature{}, err
	}
	return BlockSignature{Signature: sig, SignerPub: pub, SignerAddr: addr}, nil
}

// sortedSignatures returns a deduplicated copy of sigs in the total
// order defined on BlockSignature. Sorting (rather than preserving
// insertion order) is the contract that keeps a signature set's
// canonical encoding deterministic.
func sortedSignatures(sigs []BlockSignature) []BlockSignature {
	out := make([]BlockSignature, 0, len(sigs))
	for _, s := range sigs {
		dup := false
		for _, existing := range out {
			if existing.Equal(s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// EncodeBlock is the canonical encoding of a Block: index, header,
// signatures as a sorted, length-prefixed sequence, then transactions
// as a length-prefixed sequence in list order (order is part of a
// block's identity, unlike the signature set).
func EncodeBlock(b Block) []byte {
	var buf bytes.Buffer
	writeUint64(&buf, b.Index)
	buf.Write(EncodeHeader(b.Header))

	sigs := sortedSignatures(b.Signatures)
	writeUint32(&buf, uint32(len(sigs)))
	for _, s := range sigs {
		buf.Write(EncodeSignature(s))
	}

	writeUint32(&buf, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		writeLP(&buf, tx.Encode())
	}
	return buf.Bytes()
}

// DecodeBlock reconstructs a Block from its canonical bytes. Because
// Transaction is opaque to the core, decoding a transaction list
// requires the caller's factory.
func DecodeBlock(data []byte, decodeTx TxDecoder) (Block, error) {
	r := bytes.NewReader(data)
	index, err := readUint64(r)
	if err != nil {
		return Block{}, err
	}

	// BlockHeader has no outer length prefix, so it is decoded from the
	// remaining stream directly rather than via a sliced-off segment.
	header, err := decodeHeaderFromReader(r)
	if err != nil {
		return Block{}, err
	}

	sigCount, err := readUint32(r)
	if err != nil {
		return Block{}, err
	}
	sigs := make([]BlockSignature, sigCount)
	for i := range sigs {
		sig, err := decodeSignature(r)
		if err != nil {
			return Block{}, err
		}
		sigs[i] = sig
	}

	txCount, err := readUint32(r)
	if err != nil {
		return Block{}, err
	}
	txs := make([]Transaction, txCount)
	for i := range txs {
		raw, err := readLP(r)
		if err != nil {
			return Block{}, err
		}
		if decodeTx == nil {
			return Block{}, errors.Wrap(ErrDecode, "no transaction decoder supplied")
		}
		tx, err := decodeTx(raw)
		if err != nil {
			return Block{}, errors.Wrap(ErrDecode, "transaction: "+err.Error())
		}
		txs[i] = tx
	}

	return Block{
		Index:        index,
		Header:       header,
		Signatures:   sigs,
		Transactions: txs,
	}, nil
}

// decodeHeaderFromReader decodes a BlockHeader in place from r, since
// the header has no length prefix of its own within a Block.
func decodeHeaderFromReader(r *bytes.Reader) (BlockHeader, error) {
	origin, err := readAddress(r)
	if err != nil {
		return BlockHeader{}, err
	}
	prevHash, err := readLP(r)
	if err != nil {
		return BlockHeader{}, err
	}
	merkleRoot, err := readLP(r)
	if err != nil {
		return BlockHeader{}, err
	}
	ts, err := readUint64(r)
	if err != nil {
		return BlockHeader{}, err
	}
	poa, err := decodePoA(r)
	if err != nil {
		return BlockHeader{}, err
	}
	return BlockHeader{
		Origin:     origin,
		PrevHash:   prevHash,
		MerkleRoot: merkleRoot,
		Timestamp:  int64(ts),
		Consensus:  poa,
	}, nil
}
