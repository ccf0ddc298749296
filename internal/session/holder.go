package session

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// CurrentUserKey is the well-known key of the session slot.
const CurrentUserKey = "currentUser"

// ErrPersistenceUnavailable is returned when the holder has no durable store.
// The in-memory session keeps working.
var ErrPersistenceUnavailable = errors.New("session persistence is unavailable")

// Holder tracks the logged in username in memory and in a durable store.
type Holder struct {
	mu      sync.RWMutex
	store   Store
	current string
}

// NewHolder creates a holder. A nil store disables persistence.
func NewHolder(store Store) *Holder {
	return &Holder{store: store}
}

// Save sets the current user. If the store write fails the current user is left unchanged.
// Without a store the user is kept in memory and ErrPersistenceUnavailable is returned.
func (h *Holder) Save(ctx context.Context, username string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		h.current = username
		return ErrPersistenceUnavailable
	}
	if err := h.store.Set(ctx, CurrentUserKey, username); err != nil {
		log.Error("failed to persist session", "user", username, "error", err)
		return err
	}
	h.current = username
	return nil
}

// SetCurrent sets the in-memory user without touching the store.
func (h *Holder) SetCurrent(username string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = username
}

// Load restores the current user from the durable store.
// ok is false when no user was saved.
func (h *Holder) Load(ctx context.Context) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return h.current, h.current != "", ErrPersistenceUnavailable
	}

	username, err := h.store.Get(ctx, CurrentUserKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.current = ""
			return "", false, nil
		}
		log.Error("failed to load session", "error", err)
		return "", false, err
	}
	h.current = username
	return username, username != "", nil
}

// Clear removes the session from the store and from memory.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = ""
	if h.store == nil {
		return ErrPersistenceUnavailable
	}
	if err := h.store.Delete(ctx, CurrentUserKey); err != nil {
		log.Error("failed to clear session", "error", err)
		return err
	}
	return nil
}

// Current returns the in-memory user without touching the store.
func (h *Holder) Current() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.current != ""
}
