package stats

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/stretchr/testify/assert"
)

func record(exercise, date string, completed bool) database.ExerciseLog {
	return database.ExerciseLog{UserID: "alice", ExerciseID: exercise, Date: date, Completed: completed}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		records []database.ExerciseLog
		today   string
		want    Summary
	}{
		{
			name:  "no records",
			today: "2024-06-10",
			want:  Summary{},
		},
		{
			name:    "single completed today",
			records: []database.ExerciseLog{record("pushups", "2024-06-10", true)},
			today:   "2024-06-10",
			want:    Summary{Today: 1, Week: 1, Total: 1},
		},
		{
			name: "one per day over the full week",
			records: []database.ExerciseLog{
				record("pushups", "2024-06-04", true),
				record("pushups", "2024-06-05", true),
				record("pushups", "2024-06-06", true),
				record("pushups", "2024-06-07", true),
				record("pushups", "2024-06-08", true),
				record("pushups", "2024-06-09", true),
				record("pushups", "2024-06-10", true),
			},
			today: "2024-06-10",
			want:  Summary{Today: 1, Week: 7, Total: 7},
		},
		{
			name: "day before the window only counts in total",
			records: []database.ExerciseLog{
				record("pushups", "2024-06-03", true),
				record("pushups", "2024-06-04", true),
			},
			today: "2024-06-10",
			want:  Summary{Today: 0, Week: 1, Total: 2},
		},
		{
			name: "records after today are outside the window",
			records: []database.ExerciseLog{
				record("pushups", "2024-06-10", true),
				record("pushups", "2024-06-11", true),
			},
			today: "2024-06-10",
			want:  Summary{Today: 1, Week: 1, Total: 2},
		},
		{
			name: "unchecked records are ignored",
			records: []database.ExerciseLog{
				record("pushups", "2024-06-10", false),
				record("squats", "2024-06-10", true),
				record("squats", "2024-05-01", false),
			},
			today: "2024-06-10",
			want:  Summary{Today: 1, Week: 1, Total: 1},
		},
		{
			name: "window crosses a month boundary",
			records: []database.ExerciseLog{
				record("pushups", "2024-02-26", true),
				record("pushups", "2024-02-27", true),
				record("pushups", "2024-03-04", true),
			},
			today: "2024-03-04",
			want:  Summary{Today: 1, Week: 2, Total: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.records, tt.today)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, "2024-06-04", WeekStart("2024-06-10"))
	assert.Equal(t, "2023-12-27", WeekStart("2024-01-02"))
	assert.Equal(t, "2024-02-24", WeekStart("2024-03-01"))
	assert.Equal(t, "garbage", WeekStart("garbage"))
}

func TestCompletedOn(t *testing.T) {
	records := []database.ExerciseLog{
		record("pushups", "2024-06-10", true),
		record("squats", "2024-06-10", false),
		record("dips", "2024-06-09", true),
		record("plank", "2024-06-10", true),
	}

	assert.Equal(t, []string{"pushups", "plank"}, CompletedOn(records, "2024-06-10"))
	assert.Len(t, OnDay(records, "2024-06-10"), 3)
	assert.Empty(t, CompletedOn(records, "2024-06-11"))
}

func TestLastActivity(t *testing.T) {
	assert.True(t, LastActivity(nil).IsZero())

	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	records := []database.ExerciseLog{
		{Timestamp: base},
		{Timestamp: base.Add(2 * time.Hour)},
		{Timestamp: base.Add(time.Hour)},
	}
	assert.Equal(t, base.Add(2*time.Hour), LastActivity(records))
}
