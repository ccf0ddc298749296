package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var resetCmdFlags struct {
	Yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all workout records of the logged in user",
	Long:  `This command deletes every exercise record of the logged in user. Records of other users are not touched.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetCmdFlags.Yes {
			return fmt.Errorf("refusing to reset progress without --yes")
		}
		return withApp(cmd.Context(), func(a *app) error {
			user, _ := a.tracker.Session()
			log.Info("Starting reset of workout records...", "user", user)

			deleted, err := a.tracker.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records\n", deleted)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetCmdFlags.Yes, "yes", "y", false, "Confirm the reset")

	rootCmd.AddCommand(resetCmd)
}
