package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/session"
	"github.com/jon4hz/workoutlog/internal/stats"
	"github.com/jonboulle/clockwork"
)

const (
	maxUsernameLength = 64
	// bcrypt ignores everything after 72 bytes.
	maxPasswordLength = 72
)

var (
	// ErrNoActiveSession is returned by operations that need a logged in user.
	ErrNoActiveSession = errors.New("no user is logged in")
	// ErrInvalidInput is returned when form input fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownExercise is returned when the exercise is not in the catalog.
	ErrUnknownExercise = errors.New("unknown exercise")
)

// Tracker is the boundary used by the CLI and the HTTP API.
type Tracker struct {
	db                database.DB
	session           *session.Holder
	catalog           *Catalog
	clock             clockwork.Clock
	loc               *time.Location
	minPasswordLength int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// WithLocation sets the time zone that decides the calendar day.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithCatalog sets the exercise catalog. Without a catalog any exercise ID is accepted.
func WithCatalog(catalog *Catalog) Option {
	return func(t *Tracker) {
		t.catalog = catalog
	}
}

// WithMinPasswordLength sets the minimum password length accepted on registration.
func WithMinPasswordLength(n int) Option {
	return func(t *Tracker) {
		t.minPasswordLength = n
	}
}

// New creates a tracker.
func New(db database.DB, holder *session.Holder, opts ...Option) *Tracker {
	t := &Tracker{
		db:                db,
		session:           holder,
		clock:             clockwork.NewRealClock(),
		loc:               time.Local,
		minPasswordLength: 6,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromConfig creates a tracker wired with the catalog, time zone and password rules of cfg.
func NewFromConfig(cfg *config.Config, db database.DB, holder *session.Holder, opts ...Option) *Tracker {
	base := []Option{
		WithCatalog(NewCatalog(cfg.Workouts)),
		WithLocation(cfg.Location()),
	}
	if cfg.Auth != nil {
		base = append(base, WithMinPasswordLength(cfg.Auth.MinPasswordLength))
	}
	return New(db, holder, append(base, opts...)...)
}

// Catalog returns the exercise catalog.
func (t *Tracker) Catalog() *Catalog {
	return t.catalog
}

// Now returns the current time in the tracker's time zone.
func (t *Tracker) Now() time.Time {
	return t.clock.Now().In(t.loc)
}

// Today returns the current calendar day.
func (t *Tracker) Today() string {
	return t.Now().Format(stats.DateLayout)
}

// Register creates an account and logs it in.
func (t *Tracker) Register(ctx context.Context, username, password, confirm string) (*database.User, error) {
	username = strings.TrimSpace(username)
	if err := t.validateRegistration(username, password, confirm); err != nil {
		return nil, err
	}

	user, err := t.db.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	log.Info("registered user", "user", user.Username)

	// the account exists at this point, registration succeeds even if the session slot cannot be written
	if err := t.saveSession(ctx, user.Username); err != nil {
		log.Warn("failed to persist session, logged in until restart", "user", user.Username, "error", err)
		t.session.SetCurrent(user.Username)
	}
	return user, nil
}

// Login checks the credentials and makes username the current user.
func (t *Tracker) Login(ctx context.Context, username, password string) (*database.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := t.db.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	log.Debug("user logged in", "user", user.Username)

	if err := t.saveSession(ctx, user.Username); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout ends the current session.
func (t *Tracker) Logout(ctx context.Context) error {
	user, _ := t.session.Current()
	if err := t.session.Clear(ctx); err != nil {
		if !errors.Is(err, session.ErrPersistenceUnavailable) {
			return err
		}
		log.Warn("session persistence unavailable, logged out in memory only")
	}
	log.Debug("user logged out", "user", user)
	return nil
}

// Session returns the current user, if any.
func (t *Tracker) Session() (string, bool) {
	return t.session.Current()
}

// Restore reloads the session saved by a previous run.
func (t *Tracker) Restore(ctx context.Context) (string, bool, error) {
	username, ok, err := t.session.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrPersistenceUnavailable) {
			return "", false, err
		}
		log.Debug("session persistence unavailable, nothing to restore")
	}
	return username, ok, nil
}

// Toggle records whether exerciseID was completed today by the current user.
func (t *Tracker) Toggle(ctx context.Context, exerciseID string, completed bool) error {
	user, ok := t.session.Current()
	if !ok {
		return ErrNoActiveSession
	}

	exerciseID = strings.TrimSpace(exerciseID)
	if exerciseID == "" {
		return fmt.Errorf("%w: exercise is required", ErrInvalidInput)
	}
	if !t.catalog.Empty() {
		if _, ok := t.catalog.Lookup(exerciseID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
		}
	}

	now := t.Now()
	key := database.ExerciseLogKey{
		UserID:     user,
		ExerciseID: exerciseID,
		Date:       now.Format(stats.DateLayout),
	}
	if err := t.db.UpsertExerciseLog(ctx, key, completed, now); err != nil {
		return fmt.Errorf("failed to save exercise: %w", err)
	}
	log.Debug("exercise toggled", "user", user, "exercise", exerciseID, "date", key.Date, "completed", completed)
	return nil
}

// Load returns the current user's records and statistics.
func (t *Tracker) Load(ctx context.Context) (*Dashboard, error) {
	user, ok := t.session.Current()
	if !ok {
		return nil, ErrNoActiveSession
	}

	all, err := t.db.GetExerciseLogs(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}
	if all == nil {
		all = []database.ExerciseLog{}
	}

	today := t.Today()
	return &Dashboard{
		User:         user,
		Date:         today,
		Today:        stats.OnDay(all, today),
		All:          all,
		Stats:        stats.Derive(all, today),
		Checklist:    t.checklist(stats.CompletedOn(all, today)),
		LastActivity: stats.LastActivity(all),
	}, nil
}

// Reset deletes every record of the current user and returns how many were removed.
func (t *Tracker) Reset(ctx context.Context) (int, error) {
	user, ok := t.session.Current()
	if !ok {
		return 0, ErrNoActiveSession
	}

	deleted, err := t.db.DeleteExerciseLogs(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("failed to reset progress: %w", err)
	}
	log.Info("progress reset", "user", user, "deleted", deleted)
	return deleted, nil
}

func (t *Tracker) saveSession(ctx context.Context, username string) error {
	if err := t.session.Save(ctx, username); err != nil {
		if errors.Is(err, session.ErrPersistenceUnavailable) {
			log.Warn("session persistence unavailable, session will not survive a restart")
			return nil
		}
		return err
	}
	return nil
}

func (t *Tracker) validateRegistration(username, password, confirm string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	case len(username) > maxUsernameLength:
		return fmt.Errorf("%w: username must be at most %d characters", ErrInvalidInput, maxUsernameLength)
	case len(password) < t.minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, t.minPasswordLength)
	case len(password) > maxPasswordLength:
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLength)
	case password != confirm:
		return fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}
	return nil
}
