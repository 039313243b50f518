package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/headlines/internal/config"
	"github.com/matheuskafuri/headlines/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and log file locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := flagConfig
		if path == "" {
			path = config.DefaultConfigPath()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nlog:    %s\n", path, logging.FilePath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  "Print the settings after applying the config file, .env, environment variables and flags. The API key is masked.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		shown := *cfg
		shown.APIKey = cfg.MaskedAPIKey()
		data, err := yaml.Marshal(&shown)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}
