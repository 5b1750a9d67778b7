package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            SERIAL PRIMARY KEY,
		player_one_id INTEGER NOT NULL REFERENCES players (id),
		player_two_id INTEGER NOT NULL REFERENCES players (id),
		winner_id     INTEGER NOT NULL REFERENCES players (id),
		state         TEXT NOT NULL DEFAULT 'completed',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_matches_distinct_players CHECK (player_one_id <> player_two_id),
		CONSTRAINT chk_matches_winner CHECK (winner_id = player_one_id OR winner_id = player_two_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_player_one ON matches (player_one_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_player_two ON matches (player_two_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		player_one_id INTEGER NOT NULL REFERENCES players (id),
		player_two_id INTEGER NOT NULL REFERENCES players (id),
		winner_id     INTEGER NOT NULL REFERENCES players (id),
		state         TEXT NOT NULL DEFAULT 'completed',
		created_at    INTEGER NOT NULL,
		CONSTRAINT chk_matches_distinct_players CHECK (player_one_id <> player_two_id),
		CONSTRAINT chk_matches_winner CHECK (winner_id = player_one_id OR winner_id = player_two_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_player_one ON matches (player_one_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_player_two ON matches (player_two_id)`,
}

// Migrate creates the players and matches tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var statements []string
	switch driver {
	case "postgres":
		statements = postgresSchema
	case "sqlite":
		statements = sqliteSchema
	default:
		return fmt.Errorf("no schema for database driver %q", driver)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
