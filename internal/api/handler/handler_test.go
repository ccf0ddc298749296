package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/tracker"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", database.ErrDuplicateUsername, http.StatusConflict},
		{"not found", database.ErrUserNotFound, http.StatusNotFound},
		{"invalid password", database.ErrInvalidPassword, http.StatusUnauthorized},
		{"no session", tracker.ErrNoActiveSession, http.StatusUnauthorized},
		{"invalid input", fmt.Errorf("%w: username is required", tracker.ErrInvalidInput), http.StatusBadRequest},
		{"unknown exercise", fmt.Errorf("%w: handstand", tracker.ErrUnknownExercise), http.StatusBadRequest},
		{"storage", fmt.Errorf("failed to save exercise: %w", database.ErrStorageUnavailable), http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
