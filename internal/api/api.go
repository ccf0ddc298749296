package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/workoutlog/internal/api/auth"
	"github.com/jon4hz/workoutlog/internal/api/handler"
	"github.com/jon4hz/workoutlog/internal/config"
	"github.com/jon4hz/workoutlog/internal/tracker"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	tracker   *tracker.Tracker
}

func New(cfg *config.Config, t *tracker.Tracker, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if t == nil {
		return nil, fmt.Errorf("tracker is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		tracker:   t,
	}
	s.ginEngine.Use(gin.Recovery())
	if debug {
		s.ginEngine.Use(gin.Logger())
	}
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	h := handler.New(s.tracker)

	s.ginEngine.GET("/health", h.Health)

	api := s.ginEngine.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/session", h.Session)
	api.GET("/exercises", h.Exercises)

	protected := api.Group("/")
	protected.Use(auth.RequireSession(s.tracker))
	protected.PUT("/exercises/:id", h.ToggleExercise)
	protected.GET("/progress", h.Progress)
	protected.DELETE("/progress", h.ResetProgress)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting API server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
