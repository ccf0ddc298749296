package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/database"
	dbmock "github.com/jon4hz/workoutlog/internal/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHolder_Stores(t *testing.T) {
	ctx := context.Background()

	dbClient, err := database.Open(filepath.Join(t.TempDir(), "workoutlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbClient.Close() })

	stores := map[string]Store{
		"memory":   NewMemoryStore(),
		"mock db":  NewDatabaseStore(dbmock.NewMockDB()),
		"database": NewDatabaseStore(dbClient),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			h := NewHolder(store)

			username, ok, err := h.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, username)

			require.NoError(t, h.Save(ctx, "alice"))
			current, ok := h.Current()
			assert.True(t, ok)
			assert.Equal(t, "alice", current)

			// a second holder on the same store restores the session
			restored := NewHolder(store)
			username, ok, err = restored.Load(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "alice", username)

			require.NoError(t, restored.Clear(ctx))
			_, ok = restored.Current()
			assert.False(t, ok)

			username, ok, err = h.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, username)

			// clearing twice is fine
			require.NoError(t, h.Clear(ctx))
		})
	}
}

func TestHolder_WithoutStore(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(nil)

	err := h.Save(ctx, "alice")
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)

	current, ok := h.Current()
	assert.True(t, ok)
	assert.Equal(t, "alice", current)

	username, ok, err := h.Load(ctx)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	assert.ErrorIs(t, h.Clear(ctx), ErrPersistenceUnavailable)
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestHolder_SaveError(t *testing.T) {
	db := dbmock.NewMockDB()
	db.SetValueError = errors.New("disk full")
	h := NewHolder(NewDatabaseStore(db))

	err := h.Save(context.Background(), "alice")
	assert.EqualError(t, err, "disk full")

	_, ok := h.Current()
	assert.False(t, ok)

	db.SetValueError = nil
	require.NoError(t, h.Save(context.Background(), "bob"))
	db.SetValueError = errors.New("disk full")
	assert.Error(t, h.Save(context.Background(), "alice"))

	current, ok := h.Current()
	assert.True(t, ok)
	assert.Equal(t, "bob", current)
}

func TestHolder_SetCurrent(t *testing.T) {
	db := dbmock.NewMockDB()
	h := NewHolder(NewDatabaseStore(db))

	h.SetCurrent("alice")
	current, ok := h.Current()
	assert.True(t, ok)
	assert.Equal(t, "alice", current)

	_, err := db.GetValue(context.Background(), CurrentUserKey)
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func TestNewStore(t *testing.T) {
	db := dbmock.NewMockDB()

	tests := []struct {
		name    string
		cfg     *config.SessionConfig
		db      database.DB
		wantNil bool
		wantErr bool
	}{
		{name: "nil config uses database", cfg: nil, db: db},
		{name: "database", cfg: &config.SessionConfig{Backend: config.SessionBackendDatabase}, db: db},
		{name: "database without db", cfg: &config.SessionConfig{Backend: config.SessionBackendDatabase}, wantErr: true},
		{name: "memory", cfg: &config.SessionConfig{Backend: config.SessionBackendMemory}},
		{name: "none", cfg: &config.SessionConfig{Backend: config.SessionBackendNone}, wantNil: true},
		{name: "unknown", cfg: &config.SessionConfig{Backend: "cookie"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.cfg, tt.db)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, store)
				return
			}
			require.NotNil(t, store)
			assert.NoError(t, store.Close())
		})
	}
}
