package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateUp applies all pending embedded migrations.
func (s *SessionStore) migrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: that would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version. Zero means none.
func (s *SessionStore) SchemaVersion() (uint, bool, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *SessionStore) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{logger: s.logger}
	return m, nil
}

// migrateLogger implements migrate.Logger on top of slog.
type migrateLogger struct{ logger *slog.Logger }

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	if l.logger != nil {
		l.logger.Debug("migrate", "msg", fmt.Sprintf(format, v...))
	}
}

func (l *migrateLogger) Verbose() bool { return false }
