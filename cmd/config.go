package cmd

import (
	"fmt"

	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Print the default configuration",
	Long:    `Print the default configuration as YAML. Redirect the output to config.yml to get started.`,
	Example: `workoutlog config > config.yml`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
