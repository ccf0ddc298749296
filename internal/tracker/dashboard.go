package tracker

import (
	"time"

	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/stats"
	"github.com/samber/lo"
)

// Dashboard is everything needed to render the main screen.
type Dashboard struct {
	User         string                 `json:"user"`
	Date         string                 `json:"date"`
	Today        []database.ExerciseLog `json:"today"`
	All          []database.ExerciseLog `json:"all"`
	Stats        stats.Summary          `json:"stats"`
	Checklist    []ChecklistDay         `json:"checklist"`
	LastActivity time.Time              `json:"lastActivity"`
}

// ChecklistDay is a workout day with today's completion state of each exercise.
type ChecklistDay struct {
	Day       string          `json:"day"`
	Name      string          `json:"name"`
	Exercises []ChecklistItem `json:"exercises"`
}

// ChecklistItem is one exercise of the checklist.
type ChecklistItem struct {
	config.Exercise
	Completed bool `json:"completed"`
}

func (t *Tracker) checklist(completedToday []string) []ChecklistDay {
	return lo.Map(t.catalog.Days(), func(day config.WorkoutDay, _ int) ChecklistDay {
		return ChecklistDay{
			Day:  day.Day,
			Name: day.Name,
			Exercises: lo.Map(day.Exercises, func(ex config.Exercise, _ int) ChecklistItem {
				return ChecklistItem{
					Exercise:  ex,
					Completed: lo.Contains(completedToday, ex.ID),
				}
			}),
		}
	})
}
