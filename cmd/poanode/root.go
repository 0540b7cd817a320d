// Command poanode wires the block core to a storage backend and exposes
// genesis/forge/validate operations from the command line. It never
// performs networking: peer transport is an external concern.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frgk/poacore/blockchain/store"
	"github.com/frgk/poacore/config"
	"github.com/frgk/poacore/logging"
)

var (
	configPath string
	cfg        *config.Node
	chainStore store.ChainStore

	log = logging.New("cmd.poanode")
)

var rootCmd = &cobra.Command{
	Use:   "poanode",
	Short: "forge and validate blocks against a PoA chain store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		switch cfg.StoreBackend {
		case "badger":
			badgerStore, err := store.OpenBadgerChainStore(cfg.BadgerDir)
			if err != nil {
				return fmt.Errorf("open badger store: %w", err)
			}
			chainStore = badgerStore
		default:
			chainStore = store.NewMemoryChainStore()
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closer, ok := chainStore.(*store.BadgerChainStore); ok {
			return closer.Close()
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "poanode.yaml", "path to node config file")
	rootCmd.AddCommand(genesisCmd)
	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(validateBlockCmd)
	rootCmd.AddCommand(validateChainCmd)
}
