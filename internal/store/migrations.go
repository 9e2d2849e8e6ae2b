package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the version recorded in schema_version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			timezone      TEXT NOT NULL DEFAULT 'UTC',
			created_at    TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name     TEXT NOT NULL,
			color    TEXT NOT NULL,
			icon     TEXT NOT NULL DEFAULT '',
			UNIQUE(user_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id            INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title              TEXT NOT NULL,
			description        TEXT NOT NULL DEFAULT '',
			category           TEXT NOT NULL DEFAULT '',
			priority           TEXT NOT NULL DEFAULT 'medium'
			                   CHECK (priority IN ('high', 'medium', 'low')),
			completed          BOOLEAN NOT NULL DEFAULT 0,
			date               TEXT NOT NULL,
			time_slot          TEXT NOT NULL DEFAULT '',
			estimated_duration INTEGER NOT NULL DEFAULT 60 CHECK (estimated_duration >= 0),
			actual_duration    INTEGER CHECK (actual_duration IS NULL OR actual_duration >= 0),
			created_at         TEXT NOT NULL,
			completed_at       TEXT,
			tags               TEXT NOT NULL DEFAULT '',
			recurring          TEXT NOT NULL DEFAULT 'none',
			parent_task_id     INTEGER REFERENCES tasks(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			target_date TEXT NOT NULL,
			progress    REAL NOT NULL DEFAULT 0,
			completed   BOOLEAN NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habits (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			frequency   TEXT NOT NULL DEFAULT 'daily',
			streak      INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_logs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id  INTEGER NOT NULL REFERENCES habits(id),
			date      TEXT NOT NULL,
			completed BOOLEAN NOT NULL,
			notes     TEXT NOT NULL DEFAULT '',
			UNIQUE(habit_id, date)
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON tasks(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_completed ON tasks(user_id, completed)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_habit ON habit_logs(habit_id, date)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
