package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jon4hz/workoutlog/internal/tracker"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			out := cmd.OutOrStdout()
			for _, day := range a.tracker.Catalog().Days() {
				fmt.Fprintf(out, "%s\n", day.Name)
				for _, ex := range day.Exercises {
					fmt.Fprintf(out, "  %-14s %-16s %dx%s\n", ex.ID, ex.Name, ex.Sets, ex.Reps)
				}
			}
			return nil
		})
	},
}

var doneCmd = &cobra.Command{
	Use:     "done <exercise-id>",
	Short:   "Mark an exercise as completed today",
	Args:    cobra.ExactArgs(1),
	Example: `workoutlog done pushups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], true)
	},
}

var undoCmd = &cobra.Command{
	Use:     "undo <exercise-id>",
	Short:   "Mark an exercise as not completed today",
	Args:    cobra.ExactArgs(1),
	Example: `workoutlog undo pushups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], false)
	},
}

func toggle(cmd *cobra.Command, exerciseID string, completed bool) error {
	return withApp(cmd.Context(), func(a *app) error {
		if err := a.tracker.Toggle(cmd.Context(), exerciseID, completed); err != nil {
			return err
		}
		state := "completed"
		if !completed {
			state = "not completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s marked as %s for %s\n", exerciseID, state, a.tracker.Today())
		return nil
	})
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's checklist and statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			dash, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), a.tracker, dash)
			return nil
		})
	},
}

func printDashboard(out io.Writer, t *tracker.Tracker, dash *tracker.Dashboard) {
	fmt.Fprintf(out, "%s - %s\n\n", dash.User, dash.Date)
	for _, day := range dash.Checklist {
		fmt.Fprintln(out, day.Name)
		for _, item := range day.Exercises {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %-16s %dx%s\n", mark, item.Name, item.Sets, item.Reps)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("-", 24))
	fmt.Fprintf(out, "Today:    %d\n", dash.Stats.Today)
	fmt.Fprintf(out, "Week:     %d\n", dash.Stats.Week)
	fmt.Fprintf(out, "Total:    %d\n", dash.Stats.Total)
	if !dash.LastActivity.IsZero() {
		fmt.Fprintf(out, "Last activity: %s\n", timediff.TimeDiff(dash.LastActivity, timediff.WithStartTime(t.Now())))
	}
}

func init() {
	rootCmd.AddCommand(exercisesCmd, doneCmd, undoCmd, statusCmd)
}
