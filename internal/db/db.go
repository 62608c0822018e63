package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/tend/internal/models"
)

// Config selects and tunes the database backend.
type Config struct {
	Driver   string // "sqlite" or "postgres"
	DSN      string
	Debug    bool           // log every SQL statement
	Location *time.Location // zone used for "today"; defaults to time.Local
}

// Store is the persistence layer behind both the HTTP API and the CLI.
type Store struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now. It also drives gorm's created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open connects to the configured database and runs migrations.
func Open(cfg Config, opts ...Option) (*Store, error) {
	s := &Store{now: time.Now, loc: cfg.Location}
	if s.loc == nil {
		s.loc = time.Local
	}
	for _, opt := range opts {
		opt(s)
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent // Quiet by default
	if cfg.Debug {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		NowFunc:                                  func() time.Time { return s.now().UTC() },
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "" || cfg.Driver == "sqlite" {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; in-memory databases also vanish per connection.
		sqlDB.SetMaxOpenConns(1)
	}

	s.db = gdb
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		if cfg.DSN != ":memory:" && !strings.HasPrefix(cfg.DSN, "file:") {
			if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		conn, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.Item{},
		&models.Todo{},
		&models.Value{},
		&models.Habit{},
		&models.Event{},
	)
}

// Gorm exposes the underlying handle for maintenance and tests.
func (s *Store) Gorm() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// startOfToday is local midnight in the store's zone.
func (s *Store) startOfToday() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// ownedBy restricts a query on table to rows whose Item belongs to userID.
func ownedBy(table string, userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN items ON items.id = "+table+".item_id AND items.user_id = ?", userID)
	}
}

// createItem allocates the base row for a new specialization.
func createItem(tx *gorm.DB, userID uint, typ models.ItemType) (models.Item, error) {
	item := models.Item{UserID: userID, Type: typ}
	if err := tx.Create(&item).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}
