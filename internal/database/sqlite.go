package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// Init opens the SQLite database at the given path and prepares the
// connection pool. The parent directory is created when missing.
func Init(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := Open(dbPath)
	if err != nil {
		return err
	}

	db = conn
	log.Printf("database initialized: %s", dbPath)
	return nil
}

// Open opens a SQLite database without touching the package singleton.
// Tests use it with ":memory:" paths.
func Open(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc's driver serializes writers itself, but the in-memory mode
	// gives each pool connection its own database, so cap the pool at one.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// GetDB returns the shared database handle.
func GetDB() *sql.DB {
	return db
}

// Close closes the shared database handle.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}
