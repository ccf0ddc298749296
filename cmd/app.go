package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	"github.com/jon4hz/workoutlog/internal/session"
	"github.com/jon4hz/workoutlog/internal/tracker"
)

// app bundles everything a command needs.
type app struct {
	cfg     *config.Config
	db      *database.Client
	store   session.Store
	tracker *tracker.Tracker
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*database.Client, error) {
	db, err := database.Open(cfg.Database.Path, database.WithBcryptCost(cfg.Auth.BcryptCost))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// newApp loads the config, opens the database and restores the saved session.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(cfg.Session, db)
	if err != nil {
		db.Close() //nolint: errcheck
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		store:   store,
		tracker: tracker.NewFromConfig(cfg, db, session.NewHolder(store)),
	}

	if user, ok, err := a.tracker.Restore(ctx); err != nil {
		log.Warn("failed to restore session", "error", err)
	} else if ok {
		log.Debug("restored session", "user", user)
	}
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	errs = append(errs, a.db.Close())
	return errors.Join(errs...)
}

// withApp runs fn with a ready app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close() //nolint: errcheck
	return fn(a)
}
