package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frgk/poacore/blockchain"
)

var validateChainCmd = &cobra.Command{
	Use:   "validate-chain",
	Short: "read every stored block and validate the entire history",
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := chainStore.Height()
		if err != nil {
			return fmt.Errorf("chain height: %w", err)
		}

		blocks := make([]blockchain.Block, 0, height)
		for i := uint64(0); i < height; i++ {
			block, err := loadBlock(i)
			if err != nil {
				return err
			}
			blocks = append(blocks, block)
		}

		if err := blockchain.ValidateChain(blocks); err != nil {
			log.Error().Err(err).Msg("chain rejected")
			return err
		}
		log.Info().Uint64("height", height).Msg("chain valid")
		fmt.Println("ok")
		return nil
	},
}
