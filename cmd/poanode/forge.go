package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"

	"github.com/frgk/poacore/blockchain"
	"github.com/frgk/poacore/tx"
)

var txBatchPath string

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "build and sign one block on top of the stored chain tip",
	RunE: func(cmd *cobra.Command, args []string) error {
		poa, err := cfg.PoA()
		if err != nil {
			return fmt.Errorf("consensus parameters: %w", err)
		}
		signingKey, err := cfg.SigningKey()
		if err != nil {
			return err
		}

		height, err := chainStore.Height()
		if err != nil {
			return fmt.Errorf("chain height: %w", err)
		}
		if height == 0 {
			return fmt.Errorf("no chain tip stored: run `poanode genesis` first")
		}
		tip, err := loadBlock(height - 1)
		if err != nil {
			return fmt.Errorf("load chain tip: %w", err)
		}

		txs, err := loadTxBatch(txBatchPath)
		if err != nil {
			return fmt.Errorf("load transaction batch: %w", err)
		}

		tipHash := blockchain.HeaderHash(tip.Header)
		origin := blockchain.DeriveAddress(blockchain.DerivePublicKey(signingKey))

		block, err := blockchain.NewBlock(blockchain.BlockCreationParams{
			Origin:       origin,
			PrevHash:     tipHash[:],
			Index:        tip.Index + 1,
			Transactions: txs,
			SigningKey:   signingKey,
			Consensus:    poa,
		})
		if err != nil {
			return fmt.Errorf("forge block: %w", err)
		}

		if err := chainStore.Put(block.Index, blockchain.EncodeBlock(block)); err != nil {
			return fmt.Errorf("store forged block: %w", err)
		}
		log.Info().Uint64("index", block.Index).Int("transactions", len(txs)).Msg("forged block")

		out, err := json.MarshalIndent(blockchain.ToJSONProjection(block), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// transferSpec is the JSON shape a transaction batch file supplies: one
// entry per transfer. An entry with no fromPrivHex is a coinbase
// issuance, mirroring tx.NewCoinbase.
type transferSpec struct {
	FromPrivHex string `json:"fromPrivHex"`
	ToHex       string `json:"to"`
	Amount      uint64 `json:"amount"`
	Nonce       uint64 `json:"nonce"`
}

func loadTxBatch(path string) ([]blockchain.Transaction, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []transferSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}

	txs := make([]blockchain.Transaction, len(specs))
	for i, spec := range specs {
		toRaw, err := hex.DecodeString(spec.ToHex)
		if err != nil {
			return nil, fmt.Errorf("entry %d: malformed recipient: %w", i, err)
		}
		var to blockchain.Address
		copy(to[:], toRaw)

		if spec.FromPrivHex == "" {
			txs[i] = tx.NewCoinbase(to, spec.Amount)
			continue
		}
		privRaw, err := hex.DecodeString(spec.FromPrivHex)
		if err != nil {
			return nil, fmt.Errorf("entry %d: malformed sender key: %w", i, err)
		}
		priv := secp256k1.PrivKeyFromBytes(privRaw)
		txs[i] = tx.NewSignedTransfer(priv, to, spec.Amount, spec.Nonce)
	}
	return txs, nil
}

func init() {
	forgeCmd.Flags().StringVar(&txBatchPath, "tx-file", "", "path to a JSON transaction batch")
}
