package tracker

import (
	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/samber/lo"
)

// Catalog is the fixed set of exercises a user can tick off.
type Catalog struct {
	days []config.WorkoutDay
	byID map[string]config.Exercise
}

// NewCatalog indexes the workout days by exercise ID.
func NewCatalog(days []config.WorkoutDay) *Catalog {
	exercises := lo.FlatMap(days, func(day config.WorkoutDay, _ int) []config.Exercise {
		return day.Exercises
	})
	return &Catalog{
		days: days,
		byID: lo.KeyBy(exercises, func(ex config.Exercise) string {
			return ex.ID
		}),
	}
}

// Days returns the workout days in configured order.
func (c *Catalog) Days() []config.WorkoutDay {
	if c == nil {
		return nil
	}
	return c.days
}

// Lookup returns the exercise with the given ID.
func (c *Catalog) Lookup(id string) (config.Exercise, bool) {
	if c == nil {
		return config.Exercise{}, false
	}
	ex, ok := c.byID[id]
	return ex, ok
}

// Empty reports whether the catalog has no exercises.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.byID) == 0
}
