package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const deleteBatchSize = 100

// ExerciseLogKey identifies the single completion record of a user, exercise and day.
type ExerciseLogKey struct {
	UserID     string
	ExerciseID string
	// Date is the calendar day in YYYY-MM-DD format.
	Date string
}

func (k ExerciseLogKey) valid() bool {
	return k.UserID != "" && k.ExerciseID != "" && k.Date != ""
}

// ExerciseLog is the completion state of one exercise on one day.
// The composite primary key guarantees a single record per (user, exercise, day).
type ExerciseLog struct {
	UserID     string    `gorm:"primaryKey;index:idx_exercise_logs_user_id" json:"userId"`
	ExerciseID string    `gorm:"primaryKey" json:"exerciseId"`
	Date       string    `gorm:"primaryKey;size:10;index:idx_exercise_logs_date" json:"date"`
	Completed  bool      `gorm:"not null" json:"completed"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

// Key returns the composite key of the record.
func (l ExerciseLog) Key() ExerciseLogKey {
	return ExerciseLogKey{UserID: l.UserID, ExerciseID: l.ExerciseID, Date: l.Date}
}

// UpsertExerciseLog writes the completion state for key, replacing any previous state.
func (c *Client) UpsertExerciseLog(ctx context.Context, key ExerciseLogKey, completed bool, at time.Time) error {
	if !key.valid() {
		return ErrIncompleteKey
	}

	entry := ExerciseLog{
		UserID:     key.UserID,
		ExerciseID: key.ExerciseID,
		Date:       key.Date,
		Completed:  completed,
		Timestamp:  at,
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "timestamp"}),
	}).Create(&entry).Error
	if err != nil {
		log.Error("failed to upsert exercise log", "user", key.UserID, "exercise", key.ExerciseID, "date", key.Date, "error", err)
		return err
	}
	return nil
}

// GetExerciseLogs returns every record of the user ordered by date and exercise.
func (c *Client) GetExerciseLogs(ctx context.Context, userID string) ([]ExerciseLog, error) {
	var logs []ExerciseLog
	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date, exercise_id").
		Find(&logs).Error; err != nil {
		log.Error("failed to get exercise logs", "user", userID, "error", err)
		return nil, err
	}
	return logs, nil
}

// DeleteExerciseLogs removes every record of the user and returns how many were deleted.
// Records are walked through the user index in batches until none are left.
func (c *Client) DeleteExerciseLogs(ctx context.Context, userID string) (int, error) {
	var deleted int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for {
			var batch []ExerciseLog
			if err := tx.Where("user_id = ?", userID).Limit(deleteBatchSize).Find(&batch).Error; err != nil {
				return err
			}
			if len(batch) == 0 {
				return nil
			}
			for _, entry := range batch {
				result := tx.
					Where("user_id = ? AND exercise_id = ? AND date = ?", entry.UserID, entry.ExerciseID, entry.Date).
					Delete(&ExerciseLog{})
				if result.Error != nil {
					return result.Error
				}
				deleted += result.RowsAffected
			}
		}
	})
	if err != nil {
		log.Error("failed to delete exercise logs", "user", userID, "error", err)
		return 0, err
	}

	n, err := safecast.Convert[int](deleted)
	if err != nil {
		return 0, fmt.Errorf("failed to convert deleted count: %w", err)
	}
	return n, nil
}

// CountExerciseLogs returns the number of records across all users.
func (c *Client) CountExerciseLogs(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&ExerciseLog{}).Count(&count).Error; err != nil {
		log.Error("failed to count exercise logs", "error", err)
		return 0, err
	}
	return count, nil
}
