package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/graviton-network/graviton-go/genesis"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a genesis configuration file",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func loadGenesis(path string) (*genesis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read genesis file %s", path)
	}
	var cfg genesis.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse genesis file %s", path)
	}
	return &cfg, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenesis(flagGenesis)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid genesis configuration")
	}
	log.Info().
		Uint64("chain_id", cfg.ChainID).
		Int("validators", len(cfg.Validators)).
		Msg("genesis configuration is valid")
	return nil
}
