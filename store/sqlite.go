// Package store provides SQLite-backed history of finished encounters.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS encounters (
	id                TEXT PRIMARY KEY,
	enemy             TEXT NOT NULL,
	outcome           TEXT NOT NULL,
	rounds            INTEGER NOT NULL DEFAULT 0,
	capabilities_json TEXT NOT NULL DEFAULT '[]',
	player_health     INTEGER NOT NULL DEFAULT 0,
	enemy_health      INTEGER NOT NULL DEFAULT 0,
	final_phase       INTEGER NOT NULL DEFAULT 0,
	started_at        INTEGER NOT NULL,
	ended_at          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_encounters_outcome ON encounters(outcome);
CREATE INDEX IF NOT EXISTS idx_encounters_ended ON encounters(ended_at);
`

// NewDB opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
