// Package stats derives completion counters from exercise log records.
package stats

import (
	"time"

	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/samber/lo"
)

// DateLayout is the calendar day format of exercise records.
// ISO dates sort lexically in chronological order.
const DateLayout = time.DateOnly

// WeekDays is the length of the trailing week window, today included.
const WeekDays = 7

// Summary holds the completion counters shown on the dashboard.
type Summary struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Total int `json:"total"`
}

// Derive counts completed records for today, the trailing week and all time.
// today must be formatted as DateLayout.
func Derive(records []database.ExerciseLog, today string) Summary {
	completed := lo.Filter(records, func(r database.ExerciseLog, _ int) bool {
		return r.Completed
	})
	weekStart := WeekStart(today)

	return Summary{
		Today: lo.CountBy(completed, func(r database.ExerciseLog) bool {
			return r.Date == today
		}),
		Week: lo.CountBy(completed, func(r database.ExerciseLog) bool {
			return r.Date >= weekStart && r.Date <= today
		}),
		Total: len(completed),
	}
}

// WeekStart returns the first day of the week window ending on today.
// An unparsable today yields today itself.
func WeekStart(today string) string {
	day, err := time.Parse(DateLayout, today)
	if err != nil {
		return today
	}
	return day.AddDate(0, 0, -(WeekDays - 1)).Format(DateLayout)
}

// OnDay returns the records dated day.
func OnDay(records []database.ExerciseLog, day string) []database.ExerciseLog {
	return lo.Filter(records, func(r database.ExerciseLog, _ int) bool {
		return r.Date == day
	})
}

// CompletedOn returns the IDs of the exercises completed on day.
func CompletedOn(records []database.ExerciseLog, day string) []string {
	return lo.FilterMap(records, func(r database.ExerciseLog, _ int) (string, bool) {
		return r.ExerciseID, r.Completed && r.Date == day
	})
}

// LastActivity returns the most recent write time, or the zero time without records.
func LastActivity(records []database.ExerciseLog) time.Time {
	if len(records) == 0 {
		return time.Time{}
	}
	return lo.MaxBy(records, func(a, b database.ExerciseLog) bool {
		return a.Timestamp.After(b.Timestamp)
	}).Timestamp
}
