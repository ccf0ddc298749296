package cmd

import (
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/workoutlog/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workoutlog HTTP API",
	Long:  `Start the workoutlog HTTP API serving the same operations as the command line.`,
	Example: `workoutlog serve --config config.yml
workoutlog serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(a *app) error {
		server, err := api.New(a.cfg, a.tracker, log.GetLevel() == log.DebugLevel)
		if err != nil {
			return err
		}

		log.Info("workoutlog started successfully")
		if err := server.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		log.Info("shutting down gracefully...")
		return nil
	})
}
