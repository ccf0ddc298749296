package cmd

import (
	"fmt"
	"os"

	"github.com/ccoveille/go-safecast"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display statistics about registered users and stored workout records.`,
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

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		records, err := db.CountExerciseLogs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		version, err := db.SchemaVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Database Statistics:")
		fmt.Fprintf(out, "Path: %s\n", db.Path())
		fmt.Fprintf(out, "Schema Version: %d\n", version)
		fmt.Fprintf(out, "Users: %s\n", humanize.Comma(users))
		fmt.Fprintf(out, "Exercise Records: %s\n", humanize.Comma(records))

		if info, err := os.Stat(db.Path()); err == nil {
			if size, err := safecast.Convert[uint64](info.Size()); err == nil {
				fmt.Fprintf(out, "File Size: %s\n", humanize.Bytes(size))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
