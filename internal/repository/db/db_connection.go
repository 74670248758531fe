package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite handles a single writer best.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return conn, nil
}

// scheduler_mode and stove_state are single-row tables: one physical stove,
// one global mode record.
const schemaSchedulerMode = `
CREATE TABLE IF NOT EXISTS scheduler_mode (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    enabled BOOLEAN NOT NULL,
    semi_manual BOOLEAN NOT NULL,
    return_to_auto_at TIMESTAMP,
    last_updated TIMESTAMP NOT NULL
);
`

const schemaStoveState = `
CREATE TABLE IF NOT EXISTS stove_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    burning BOOLEAN NOT NULL,
    power INTEGER NOT NULL,
    fan INTEGER NOT NULL,
    flame_temp_c REAL NOT NULL,
    exhaust_temp_c REAL NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaScheduleIntervals = `
CREATE TABLE IF NOT EXISTS schedule_intervals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
    position INTEGER NOT NULL,
    start_clock TEXT NOT NULL,
    end_clock TEXT NOT NULL,
    power INTEGER NOT NULL,
    fan INTEGER NOT NULL
);
`

const schemaStoveEvents = `
CREATE TABLE IF NOT EXISTS stove_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSchedulerMode,
		schemaStoveState,
		schemaScheduleIntervals,
		schemaStoveEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
