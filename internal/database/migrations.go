package database

import (
	"database/sql"
	"fmt"
	"log"
)

type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create_uploads",
		SQL: `CREATE TABLE IF NOT EXISTS uploads (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			content BLOB NOT NULL,
			distance_km REAL NOT NULL,
			ascent_m REAL NOT NULL,
			descent_m REAL NOT NULL,
			point_count INTEGER NOT NULL,
			uploaded_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_uploads_uploaded_at ON uploads(uploaded_at);`,
	},
	{
		Version: 2,
		Name:    "create_outputs",
		SQL: `CREATE TABLE IF NOT EXISTS outputs (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			format TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outputs_session_id ON outputs(session_id);
		CREATE INDEX IF NOT EXISTS idx_outputs_created_at ON outputs(created_at);`,
	},
}

// Migrate applies pending schema migrations in version order.
func Migrate(conn *sql.DB) error {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version).Scan(&count); err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		if _, err := conn.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := conn.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}
