package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so the full
// list re-runs on each startup.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS wbs_nodes (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id         TEXT REFERENCES wbs_nodes(id) ON DELETE CASCADE,
		level             INTEGER NOT NULL CHECK(level BETWEEN 0 AND 4),
		order_index       INTEGER NOT NULL DEFAULT 0,
		title             TEXT NOT NULL,
		weight            REAL CHECK(weight IS NULL OR weight >= 0),
		progress          INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		status            TEXT NOT NULL DEFAULT 'not_started'
		                  CHECK(status IN ('not_started','in_progress','delayed','completed')),
		start_date        TEXT,
		end_date          TEXT,
		actual_start_date TEXT,
		actual_end_date   TEXT,
		assignees         TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_project ON wbs_nodes(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_parent ON wbs_nodes(parent_id)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id         TEXT PRIMARY KEY,
		project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		end_date   TEXT,
		name       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_holidays_project ON holidays(project_id)`,

	`CREATE TABLE IF NOT EXISTS code_counters (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		prefix     TEXT NOT NULL,
		last_seq   INTEGER NOT NULL DEFAULT 0 CHECK(last_seq >= 0),
		PRIMARY KEY (project_id, prefix)
	)`,
}
