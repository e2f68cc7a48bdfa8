package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateSingleActiveBaseline(db); err != nil {
		return fmt.Errorf("enforcing single active baseline: %w", err)
	}
	return nil
}

// migrateSingleActiveBaseline deactivates all but the highest active version
// per project, then installs the partial unique index that keeps it that way.
// Databases written before the index existed may hold several active rows.
func migrateSingleActiveBaseline(db *sql.DB) error {
	ctx := context.Background()

	var dupes int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (
		SELECT project_id FROM baselines WHERE is_active = 1
		GROUP BY project_id HAVING COUNT(*) > 1
	)`).Scan(&dupes)
	if err != nil {
		return fmt.Errorf("counting active baselines: %w", err)
	}

	if dupes > 0 {
		if _, err := db.ExecContext(ctx, `UPDATE baselines SET is_active = 0
			WHERE is_active = 1 AND version < (
				SELECT MAX(b2.version) FROM baselines b2
				WHERE b2.project_id = baselines.project_id AND b2.is_active = 1
			)`); err != nil {
			return fmt.Errorf("deactivating stale baselines: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_baselines_one_active
		 ON baselines(project_id) WHERE is_active = 1`); err != nil {
		return fmt.Errorf("creating active baseline index: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES wbs_items(id) ON DELETE SET NULL,
		wbs_code    TEXT NOT NULL,
		wbs_name    TEXT NOT NULL,
		qty         REAL NOT NULL DEFAULT 0 CHECK(qty >= 0),
		unit        TEXT NOT NULL DEFAULT 'pcs',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		level       INTEGER NOT NULL DEFAULT 0 CHECK(level >= 0),
		is_summary  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(project_id, wbs_code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_project ON wbs_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS daily_allocations (
		wbs_item_id      TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		date             TEXT NOT NULL,
		planned_manpower REAL NOT NULL DEFAULT 0,
		actual_manpower  REAL NOT NULL DEFAULT 0,
		qty_done         REAL NOT NULL DEFAULT 0,
		notes            TEXT NOT NULL DEFAULT '',
		source           TEXT NOT NULL DEFAULT 'grid',
		updated_at       TEXT NOT NULL,
		PRIMARY KEY (wbs_item_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_date ON daily_allocations(date)`,

	`CREATE TABLE IF NOT EXISTS baselines (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		version     INTEGER NOT NULL CHECK(version > 0),
		name        TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		is_active   INTEGER NOT NULL DEFAULT 0,
		approved_at TEXT,
		created_at  TEXT NOT NULL,
		UNIQUE(project_id, version)
	)`,

	`CREATE TABLE IF NOT EXISTS baseline_snapshots (
		id               TEXT PRIMARY KEY,
		baseline_id      TEXT NOT NULL REFERENCES baselines(id) ON DELETE CASCADE,
		wbs_item_id      TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		total_manday     REAL NOT NULL DEFAULT 0,
		start_date       TEXT,
		end_date         TEXT,
		manpower_per_day REAL NOT NULL DEFAULT 0,
		daily_plan       TEXT NOT NULL DEFAULT '{}',
		UNIQUE(baseline_id, wbs_item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_baseline ON baseline_snapshots(baseline_id)`,

	`CREATE TABLE IF NOT EXISTS forecasts (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		wbs_item_id        TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		predicted_end_date TEXT NOT NULL,
		predicted_manday   REAL NOT NULL DEFAULT 0,
		confidence         REAL NOT NULL DEFAULT 0 CHECK(confidence >= 0 AND confidence <= 1),
		risk_level         TEXT NOT NULL DEFAULT 'low'
		                   CHECK(risk_level IN ('low','medium','high')),
		reasoning          TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_forecasts_project ON forecasts(project_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS chat_action_logs (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		actions       TEXT NOT NULL,
		updated_count INTEGER NOT NULL DEFAULT 0,
		error_count   INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,
}
