package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jon4hz/workoutlog/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
// Passwords are stored as given, no hashing takes place.
type MockDB struct {
	mu sync.RWMutex

	users     map[string]*database.User
	passwords map[string]string
	logs      map[database.ExerciseLogKey]database.ExerciseLog
	values    map[string]string

	// Error simulation
	CreateUserError         error
	AuthenticateError       error
	UpsertExerciseLogError  error
	GetExerciseLogsError    error
	DeleteExerciseLogsError error
	SetValueError           error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:     make(map[string]*database.User),
		passwords: make(map[string]string),
		logs:      make(map[database.ExerciseLogKey]database.ExerciseLog),
		values:    make(map[string]string),
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[string]*database.User)
	m.passwords = make(map[string]string)
	m.logs = make(map[database.ExerciseLogKey]database.ExerciseLog)
	m.values = make(map[string]string)

	m.CreateUserError = nil
	m.AuthenticateError = nil
	m.UpsertExerciseLogError = nil
	m.GetExerciseLogsError = nil
	m.DeleteExerciseLogsError = nil
	m.SetValueError = nil
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, username, password string) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return nil, database.ErrDuplicateUsername
	}
	user := &database.User{
		Username:     username,
		PasswordHash: password,
		CreatedAt:    time.Now(),
	}
	m.users[username] = user
	m.passwords[username] = password
	return user, nil
}

func (m *MockDB) GetUser(ctx context.Context, username string) (*database.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[username]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	return user, nil
}

func (m *MockDB) Authenticate(ctx context.Context, username, password string) (*database.User, error) {
	if m.AuthenticateError != nil {
		return nil, m.AuthenticateError
	}

	user, err := m.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.passwords[username] != password {
		return nil, database.ErrInvalidPassword
	}
	return user, nil
}

func (m *MockDB) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// Exercise log operations

func (m *MockDB) UpsertExerciseLog(ctx context.Context, key database.ExerciseLogKey, completed bool, at time.Time) error {
	if m.UpsertExerciseLogError != nil {
		return m.UpsertExerciseLogError
	}
	if key.UserID == "" || key.ExerciseID == "" || key.Date == "" {
		return database.ErrIncompleteKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs[key] = database.ExerciseLog{
		UserID:     key.UserID,
		ExerciseID: key.ExerciseID,
		Date:       key.Date,
		Completed:  completed,
		Timestamp:  at,
	}
	return nil
}

func (m *MockDB) GetExerciseLogs(ctx context.Context, userID string) ([]database.ExerciseLog, error) {
	if m.GetExerciseLogsError != nil {
		return nil, m.GetExerciseLogsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var logs []database.ExerciseLog
	for key, entry := range m.logs {
		if key.UserID == userID {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date != logs[j].Date {
			return logs[i].Date < logs[j].Date
		}
		return logs[i].ExerciseID < logs[j].ExerciseID
	})
	return logs, nil
}

func (m *MockDB) DeleteExerciseLogs(ctx context.Context, userID string) (int, error) {
	if m.DeleteExerciseLogsError != nil {
		return 0, m.DeleteExerciseLogsError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key := range m.logs {
		if key.UserID == userID {
			delete(m.logs, key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockDB) CountExerciseLogs(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.logs)), nil
}

// Key-value operations

func (m *MockDB) GetValue(ctx context.Context, slot string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[slot]
	if !ok {
		return "", database.ErrKeyNotFound
	}
	return value, nil
}

func (m *MockDB) SetValue(ctx context.Context, slot, value string) error {
	if m.SetValueError != nil {
		return m.SetValueError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[slot] = value
	return nil
}

func (m *MockDB) DeleteValue(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, slot)
	return nil
}

func (m *MockDB) SchemaVersion(ctx context.Context) (int, error) {
	return database.SchemaVersion, nil
}

func (m *MockDB) Close() error {
	return nil
}
