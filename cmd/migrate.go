package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Run database migrations to set up or update the database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		version, err := db.SchemaVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database migrations completed successfully! (schema version %d)\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
