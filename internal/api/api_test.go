package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/workoutlog/internal/api/models"
	"github.com/jon4hz/workoutlog/internal/config"
	dbmock "github.com/jon4hz/workoutlog/internal/database/mock"
	"github.com/jon4hz/workoutlog/internal/session"
	"github.com/jon4hz/workoutlog/internal/tracker"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
)

type APITestSuite struct {
	suite.Suite
	db     *dbmock.MockDB
	server *Server
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	s.db = dbmock.NewMockDB()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))
	tr := tracker.NewFromConfig(cfg, s.db, session.NewHolder(session.NewMemoryStore()),
		tracker.WithClock(clock),
		tracker.WithLocation(time.UTC),
	)

	server, err := New(cfg, tr, true)
	s.Require().NoError(err)
	s.server = server
}

func (s *APITestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) register(username, password string) {
	w := s.do(http.MethodPost, "/api/register", models.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *APITestSuite) TestRegisterAndSession() {
	s.register("alice", "secret1")

	w := s.do(http.MethodGet, "/api/session", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"loggedIn":true,"username":"alice"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/logout", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/session", nil)
	s.JSONEq(`{"loggedIn":false,"username":""}`, w.Body.String())
}

func (s *APITestSuite) TestErrorStatuses() {
	s.register("alice", "secret1")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{
			name:   "duplicate username",
			method: http.MethodPost,
			path:   "/api/register",
			body:   models.RegisterRequest{Username: "alice", Password: "secret1", ConfirmPassword: "secret1"},
			want:   http.StatusConflict,
		},
		{
			name:   "mismatched confirmation",
			method: http.MethodPost,
			path:   "/api/register",
			body:   models.RegisterRequest{Username: "bob", Password: "secret1", ConfirmPassword: "secret2"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			method: http.MethodPost,
			path:   "/api/login",
			body:   models.LoginRequest{Username: "ghost", Password: "secret1"},
			want:   http.StatusNotFound,
		},
		{
			name:   "wrong password",
			method: http.MethodPost,
			path:   "/api/login",
			body:   models.LoginRequest{Username: "alice", Password: "nope-nope"},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "unknown exercise",
			method: http.MethodPut,
			path:   "/api/exercises/handstand",
			body:   map[string]bool{"completed": true},
			want:   http.StatusBadRequest,
		},
		{
			name:   "missing completed flag",
			method: http.MethodPut,
			path:   "/api/exercises/pushups",
			body:   map[string]string{},
			want:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(tt.method, tt.path, tt.body)
			s.Equal(tt.want, w.Code, w.Body.String())
		})
	}
}

func (s *APITestSuite) TestProtectedRoutesRequireSession() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/progress"},
		{http.MethodDelete, "/api/progress"},
		{http.MethodPut, "/api/exercises/pushups"},
	} {
		w := s.do(route.method, route.path, map[string]bool{"completed": true})
		s.Equal(http.StatusUnauthorized, w.Code, route.path)
	}
}

func (s *APITestSuite) TestToggleAndProgress() {
	s.register("alice", "secret1")

	w := s.do(http.MethodPut, "/api/exercises/pushups", map[string]bool{"completed": true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/progress", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var progress models.Progress
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &progress))
	s.Equal("alice", progress.User)
	s.Equal("2024-06-10", progress.Date)
	s.Equal(1, progress.Stats.Today)
	s.Equal(1, progress.Stats.Week)
	s.Equal(1, progress.Stats.Total)
	s.Require().Len(progress.Today, 1)
	s.Equal("pushups", progress.Today[0].ExerciseID)
	s.NotNil(progress.LastActivity)

	w = s.do(http.MethodDelete, "/api/progress", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true,"deleted":1}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/progress", nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &progress))
	s.Empty(progress.All)
	s.Zero(progress.Stats.Total)
}

func (s *APITestSuite) TestExercisesCatalog() {
	w := s.do(http.MethodGet, "/api/exercises", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Workouts []config.WorkoutDay `json:"workouts"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Workouts, 3)
}

func (s *APITestSuite) TestGzip() {
	req := httptest.NewRequest(http.MethodGet, "/api/exercises", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("gzip", w.Header().Get("Content-Encoding"))
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(nil, nil, false)
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	_, err = New(config.Default(), nil, false)
	if err == nil {
		t.Fatal("expected error for missing tracker")
	}
}
