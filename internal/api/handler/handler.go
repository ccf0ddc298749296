package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/workoutlog/internal/api/auth"
	"github.com/jon4hz/workoutlog/internal/api/models"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/tracker"
)

type Handler struct {
	tracker *tracker.Tracker
}

func New(t *tracker.Tracker) *Handler {
	return &Handler{tracker: t}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Register creates an account and logs it in.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	user, err := h.tracker.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    models.ToUser(user),
	})
}

// Login makes the given user the current user.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	user, err := h.tracker.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    models.ToUser(user),
	})
}

// Logout ends the current session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.tracker.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session returns the current user, if any.
func (h *Handler) Session(c *gin.Context) {
	user, ok := h.tracker.Session()
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": ok,
		"username": user,
	})
}

// Exercises returns the exercise catalog.
func (h *Handler) Exercises(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"workouts": models.Catalog(h.tracker.Catalog()),
	})
}

// ToggleExercise records today's completion state of an exercise.
func (h *Handler) ToggleExercise(c *gin.Context) {
	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "completed is required"})
		return
	}

	exerciseID := c.Param("id")
	if err := h.tracker.Toggle(c.Request.Context(), exerciseID, *req.Completed); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"exerciseId": exerciseID,
		"date":       h.tracker.Today(),
		"completed":  *req.Completed,
	})
}

// Progress returns the current user's records and statistics.
func (h *Handler) Progress(c *gin.Context) {
	dash, err := h.tracker.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToProgress(dash))
}

// ResetProgress deletes every record of the current user.
func (h *Handler) ResetProgress(c *gin.Context) {
	deleted, err := h.tracker.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	log.Info("progress reset via api", "user", auth.User(c), "deleted", deleted)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": deleted,
	})
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, database.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrInvalidPassword), errors.Is(err, tracker.ErrNoActiveSession):
		return http.StatusUnauthorized
	case errors.Is(err, tracker.ErrInvalidInput), errors.Is(err, tracker.ErrUnknownExercise):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
