package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frgk/poacore/blockchain"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "build the genesis block from the configured seed and PoA parameters, and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		poa, err := cfg.PoA()
		if err != nil {
			return fmt.Errorf("consensus parameters: %w", err)
		}
		seed, err := cfg.GenesisSeed()
		if err != nil {
			return err
		}

		block := blockchain.Genesis(seed, cfg.GenesisTimestamp, poa)
		if err := chainStore.Put(block.Index, blockchain.EncodeBlock(block)); err != nil {
			return fmt.Errorf("store genesis block: %w", err)
		}
		log.Info().Uint64("index", block.Index).Msg("built genesis block")

		out, err := json.MarshalIndent(blockchain.ToJSONProjection(block), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
