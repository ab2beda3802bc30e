// Package server provides the HTTP API for momentum.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nhle/momentum/internal/model"
	"github.com/nhle/momentum/internal/store"
)

// identityHeader names the acting user for a request. Requests without
// it act as the single default identity.
const identityHeader = "X-Identity"

const defaultIdentity = "default"

// Server provides HTTP endpoints for momentum.
type Server struct {
	echo    *echo.Echo
	store   store.Store
	logger  *zap.Logger
	config  *model.AppConfig
	metrics *metrics

	// now is the wall clock; overridable in tests to pin "today".
	now func() time.Time
}

// NewServer creates a new HTTP server.
func NewServer(st store.Store, logger *zap.Logger, cfg *model.AppConfig) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := newMetrics()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			// The error handler has not written the response yet, so
			// take the status from the error itself.
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		store:   st,
		logger:  logger,
		config:  cfg,
		metrics: m,
		now:     time.Now,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.handler()))

	v1 := s.echo.Group("/api/v1")

	v1.GET("/habits", s.handleListHabits)
	v1.POST("/habits", s.handleAddHabit)
	v1.DELETE("/habits/:id", s.handleDeleteHabit)
	v1.POST("/habits/:id/toggle", s.handleToggleHabit)
	v1.GET("/habits/:id/checkins", s.handleListCheckIns)

	v1.GET("/books/recommend", s.handleRecommend)
	v1.GET("/books/library", s.handleLibrary)
	v1.GET("/books/:id", s.handleBookDetail)
	v1.POST("/books/:id/save", s.handleSaveBook)
	v1.PUT("/books/:id/state", s.handleUpdateBookState)

	v1.POST("/focus/start", s.handleFocusStart)
	v1.POST("/focus/reset", s.handleFocusReset)

	v1.GET("/todos", s.handleListTodos)
	v1.POST("/todos", s.handleAddTodo)
	v1.POST("/todos/:id/toggle", s.handleToggleTodo)
	v1.DELETE("/todos/:id", s.handleDeleteTodo)
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// identity resolves the acting user for a request.
func identity(c echo.Context) string {
	if id := c.Request().Header.Get(identityHeader); id != "" {
		return id
	}
	return defaultIdentity
}

// today returns the server's current calendar day.
func (s *Server) today() string {
	return s.now().Format(model.DayFormat)
}

// httpError maps store errors onto HTTP status codes.
func httpError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
