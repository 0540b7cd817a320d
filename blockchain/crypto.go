package blockchain

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"lukechampine.com/blake3"
)

// Hash is the core's single collision-resistant digest function. Every
// other hash in the package — header hash, Merkle leaves and nodes — is
// derivation on top of this primitive, never a different algorithm.
func Hash(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// GeneratePrivateKey produces a fresh signing key.
func GeneratePrivateKey() (*PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// DerivePublicKey is deterministic given a private key.
func DerivePublicKey(priv *PrivateKey) *PublicKey {
	return priv.PubKey()
}

// ParsePublicKey decodes a compressed secp256k1 public key, the form
// BlockSignature.SignerPub and Transfer.FromPubKey both carry.
func ParsePublicKey(raw []byte) (*PublicKey, error) {
	return secp256k1.ParsePubKey(raw)
}

// DeriveAddress is deterministic given a public key.
func DeriveAddress(pub *PublicKey) Address {
	digest := Hash(pub.SerializeCompressed())
	var addr Address
	copy(addr[:], digest[len(digest)-len(addr):])
	return addr
}

// Sign produces a detached signature over hash(msg) under priv.
func Sign(priv *PrivateKey, msg []byte) []byte {
	digest := Hash(msg)
	sig := ecdsa.Sign(priv, digest[:])
	return sig.Serialize()
}

// Verify checks a detached signature produced by Sign against pub.
func Verify(pub *PublicKey, sig []byte, msg []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := Hash(msg)
	return parsed.Verify(digest[:], pub)
}
