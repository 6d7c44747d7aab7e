package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/club-ladder/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const MemoryPath = ":memory:"

func dsn(path string) string {
	if path == MemoryPath {
		return MemoryPath + "?_foreign_keys=on"
	}
	return path + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
}

// InitDB opens the SQLite file at path with a single connection, so every
// transaction runs alone and an in-memory database survives between calls.
func InitDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	slog.Debug("database connected", "path", path)
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// m.Close would also close db, which the caller owns.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Open connects and migrates in one step.
func Open(path string) (*sqlx.DB, error) {
	database, err := InitDB(path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(database.DB); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
