package cmd

import (
	"errors"
	"fmt"

	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/spf13/cobra"
)

var registerCmdFlags struct {
	Password string
	Confirm  string
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	Example: `workoutlog register alice --password secret1
workoutlog register alice --password secret1 --confirm secret1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := registerCmdFlags.Confirm
		if !cmd.Flags().Changed("confirm") {
			confirm = registerCmdFlags.Password
		}
		return withApp(cmd.Context(), func(a *app) error {
			user, err := a.tracker.Register(cmd.Context(), args[0], registerCmdFlags.Password, confirm)
			if err != nil {
				if errors.Is(err, database.ErrDuplicateUsername) {
					return fmt.Errorf("username %q is already taken", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", user.Username)
			return nil
		})
	},
}

var loginCmdFlags struct {
	Password string
}

var loginCmd = &cobra.Command{
	Use:     "login <username>",
	Short:   "Log in as an existing user",
	Args:    cobra.ExactArgs(1),
	Example: `workoutlog login alice --password secret1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			user, err := a.tracker.Login(cmd.Context(), args[0], loginCmdFlags.Password)
			switch {
			case errors.Is(err, database.ErrUserNotFound):
				return fmt.Errorf("user %q does not exist", args[0])
			case errors.Is(err, database.ErrInvalidPassword):
				return fmt.Errorf("wrong password")
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.tracker.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			user, ok := a.tracker.Session()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), user)
			return nil
		})
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerCmdFlags.Password, "password", "p", "", "Password of the new account")
	registerCmd.Flags().StringVar(&registerCmdFlags.Confirm, "confirm", "", "Password confirmation (defaults to --password)")
	registerCmd.MarkFlagRequired("password") //nolint: errcheck

	loginCmd.Flags().StringVarP(&loginCmdFlags.Password, "password", "p", "", "Password of the account")
	loginCmd.MarkFlagRequired("password") //nolint: errcheck

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
