// Package settings persists the dashboard's small key-value configuration
// (backend URLs) in a local SQLite database. It is the only offline storage
// the dashboard keeps.
package settings

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

// Recognized settings keys.
const (
	KeyDashboardBaseURL = "dashboardBaseUrl"
	KeyRoverBaseURL     = "roverBaseUrl"
)

// DefaultBaseURL is the placeholder host used for any unset URL key.
const DefaultBaseURL = "http://localhost:8000"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store is a persisted key-value settings cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the settings database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "settings", driver)
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

// ResetDefaults clears every recognized key back to its default.
func (s *Store) ResetDefaults() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key IN (?, ?)`,
		KeyDashboardBaseURL, KeyRoverBaseURL)
	if err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

// DashboardBaseURL returns the configured dashboard backend URL, falling
// back to DefaultBaseURL and trimming trailing slashes.
func (s *Store) DashboardBaseURL() string {
	return s.baseURL(KeyDashboardBaseURL)
}

// RoverBaseURL returns the configured rover backend URL with the same
// fallback behaviour.
func (s *Store) RoverBaseURL() string {
	return s.baseURL(KeyRoverBaseURL)
}

func (s *Store) baseURL(key string) string {
	v, err := s.Get(key)
	if err != nil || strings.TrimSpace(v) == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(v, "/")
}
