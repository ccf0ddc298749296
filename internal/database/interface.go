package database

import (
	"context"
	"time"
)

// DB is the data access surface used by the tracker.
type DB interface {
	// Accounts
	CreateUser(ctx context.Context, username, password string) (*User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Exercise log
	UpsertExerciseLog(ctx context.Context, key ExerciseLogKey, completed bool, at time.Time) error
	GetExerciseLogs(ctx context.Context, userID string) ([]ExerciseLog, error)
	DeleteExerciseLogs(ctx context.Context, userID string) (int, error)
	CountExerciseLogs(ctx context.Context) (int64, error)

	// Key-value slots
	GetValue(ctx context.Context, slot string) (string, error)
	SetValue(ctx context.Context, slot, value string) error
	DeleteValue(ctx context.Context, slot string) error

	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}
