package main

import (
	"github.com/spf13/cobra"

	"github.com/nepaliayush/flappy-bird/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the game constants after applying the config search path:
--config, ~/.flappy/flappy.yaml, ./configs/flappy.yaml, built-in defaults.

The output is a valid config file:
  flappy config > ~/.flappy/flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagDefaults {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		data, err := config.Marshal(gameConfig)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}
