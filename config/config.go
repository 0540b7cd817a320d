// Package config turns on-disk/env node configuration into the values
// the block core treats as opaque collaborators: the PoA consensus
// record, the storage backend choice, and the local signing key.
package config

import (
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/frgk/poacore/blockchain"
)

// Node is the full configuration of a single poanode process.
type Node struct {
	// StoreBackend selects the ChainStore implementation: "memory" or
	// "badger".
	StoreBackend string
	BadgerDir    string

	// SigningKeyHex is the node's local validator key, hex-encoded. A
	// node that only validates (never forges) may leave this empty.
	SigningKeyHex string

	GenesisSeedHex   string
	GenesisTimestamp int64
	ValidatorSetHex  []string
	BlockPeriod      uint64
	GenerationLimit  uint64
	SigningLimit     uint64
	Threshold        uint64
	MinTxs           uint64
}

// Load reads configuration from the file at path (any format viper
// supports — YAML, JSON, TOML), overlaying environment variables
// prefixed POANODE_, and unmarshals it into a Node.
func Load(path string) (*Node, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("poanode")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storebackend", "memory")
	v.SetDefault("blockperiod", uint64(15))
	v.SetDefault("generationlimit", uint64(1))
	v.SetDefault("signinglimit", uint64(1))
	v.SetDefault("threshold", uint64(1))
	v.SetDefault("mintxs", uint64(0))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read node config")
	}

	var node Node
	if err := v.Unmarshal(&node); err != nil {
		return nil, errors.Wrap(err, "unmarshal node config")
	}
	return &node, nil
}

// PoA converts the config's tunables into the core's opaque consensus
// record.
func (n *Node) PoA() (blockchain.PoA, error) {
	validators := make([]blockchain.Address, len(n.ValidatorSetHex))
	for i, h := range n.ValidatorSetHex {
		raw, err := hex.DecodeString(h)
		if err != nil {
			return blockchain.PoA{}, errors.Wrapf(err, "validator %d: malformed address", i)
		}
		if len(raw) != len(blockchain.Address{}) {
			return blockchain.PoA{}, errors.Errorf("validator %d: address must be %d bytes, got %d", i, len(blockchain.Address{}), len(raw))
		}
		copy(validators[i][:], raw)
	}
	return blockchain.PoA{
		ValidatorSet:    validators,
		BlockPeriod:     n.BlockPeriod,
		GenerationLimit: n.GenerationLimit,
		SigningLimit:    n.SigningLimit,
		Threshold:       n.Threshold,
		MinTxs:          n.MinTxs,
	}, nil
}

// GenesisSeed decodes the configured genesis seed bytes.
func (n *Node) GenesisSeed() ([]byte, error) {
	if n.GenesisSeedHex == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(n.GenesisSeedHex)
	if err != nil {
		return nil, errors.Wrap(err, "malformed genesis seed")
	}
	return seed, nil
}

// SigningKey decodes the node's local validator key, if configured.
func (n *Node) SigningKey() (*blockchain.PrivateKey, error) {
	if n.SigningKeyHex == "" {
		return nil, errors.New("no signing key configured")
	}
	raw, err := hex.DecodeString(n.SigningKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "malformed signing key")
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	return priv, nil
}
