package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagGenesis string
	log         zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "graviton",
	Short: "Operate the graviton epoch lifecycle core",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagGenesis, "genesis", "g", "genesis.json",
		"path to the genesis configuration file")

	log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("GRAVITON")
	viper.AutomaticEnv()
}
