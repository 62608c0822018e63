// Package api serves the tend JSON API over fiber.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/balkashynov/tend/internal/auth"
	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
)

// Store is what the handlers need from the persistence layer.
type Store interface {
	ListCompleted(ctx context.Context, userID uint) ([]models.Todo, error)
	ListCompletedTodayNoEvent(ctx context.Context, userID uint) ([]models.Todo, error)
	ListIncomplete(ctx context.Context, userID uint) ([]models.Todo, error)
	ListIncompleteByHabit(ctx context.Context, userID, habitID uint) ([]models.Todo, error)
	ListIncompleteByValue(ctx context.Context, userID, valueID uint) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID uint, req db.CreateTodoRequest) (*models.Todo, error)
	SetCompleted(ctx context.Context, userID, id uint, completed bool) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id uint) error

	CreateValue(ctx context.Context, userID uint, req db.CreateValueRequest) (*models.Value, error)
	ListValues(ctx context.Context, userID uint) ([]models.Value, error)
	DeleteValue(ctx context.Context, userID, id uint) error
	CreateHabit(ctx context.Context, userID uint, req db.CreateHabitRequest) (*models.Habit, error)
	ListHabits(ctx context.Context, userID uint) ([]models.Habit, error)
	DeleteHabit(ctx context.Context, userID, id uint) error
	CreateEvent(ctx context.Context, userID uint, req db.CreateEventRequest) (*models.Event, error)
	ListEvents(ctx context.Context, userID uint) ([]models.Event, error)
}

// Options tune a Server.
type Options struct {
	// CookieName carries the session token. Defaults to "tend_session".
	CookieName string
	// SecureCookie marks the session cookie HTTPS-only.
	SecureCookie bool
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
	Logger    *slog.Logger
}

// Server wires the fiber app to a Store.
type Server struct {
	app    *fiber.App
	store  Store
	issuer *auth.Issuer
	cookie string
	secure bool
	log    *slog.Logger
}

// New builds the fiber app with middleware and routes.
func New(store Store, issuer *auth.Issuer, opts Options) *Server {
	s := &Server{
		store:  store,
		issuer: issuer,
		cookie: opts.CookieName,
		secure: opts.SecureCookie,
		log:    opts.Logger,
	}
	if s.cookie == "" {
		s.cookie = "tend_session"
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "tend",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog != nil {
		s.app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
			Output: opts.AccessLog,
		}))
	}

	s.routes()
	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is cancelled, then shuts down within timeout.
func (s *Server) Run(ctx context.Context, addr string, timeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- s.app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}
