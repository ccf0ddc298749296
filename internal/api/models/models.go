package models

import (
	"time"

	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/stats"
	"github.com/jon4hz/workoutlog/internal/tracker"
)

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToggleRequest is the body of PUT /api/exercises/:id.
type ToggleRequest struct {
	Completed *bool `json:"completed"`
}

// User is the public view of an account.
type User struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Progress is the response of GET /api/progress.
type Progress struct {
	User         string                 `json:"user"`
	Date         string                 `json:"date"`
	Stats        stats.Summary          `json:"stats"`
	Today        []database.ExerciseLog `json:"today"`
	All          []database.ExerciseLog `json:"all"`
	Checklist    []tracker.ChecklistDay `json:"checklist"`
	LastActivity *time.Time             `json:"lastActivity,omitempty"`
}

// ToUser converts a database user, dropping the password hash.
func ToUser(u *database.User) User {
	if u == nil {
		return User{}
	}
	return User{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// ToProgress converts a dashboard into the API response.
func ToProgress(d *tracker.Dashboard) Progress {
	p := Progress{
		User:      d.User,
		Date:      d.Date,
		Stats:     d.Stats,
		Today:     d.Today,
		All:       d.All,
		Checklist: d.Checklist,
	}
	if p.Today == nil {
		p.Today = []database.ExerciseLog{}
	}
	if !d.LastActivity.IsZero() {
		last := d.LastActivity
		p.LastActivity = &last
	}
	return p
}

// Catalog returns the workout days, never nil.
func Catalog(c *tracker.Catalog) []config.WorkoutDay {
	days := c.Days()
	if days == nil {
		return []config.WorkoutDay{}
	}
	return days
}
