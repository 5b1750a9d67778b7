package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type sqliteTournamentRepository struct {
	db SQLExecutor
}

// NewSQLiteTournamentRepository expects a handle opened with foreign keys
// enabled; see db.ConnectSQLite.
func NewSQLiteTournamentRepository(db SQLExecutor) TournamentRepository {
	return &sqliteTournamentRepository{db: db}
}

func (r *sqliteTournamentRepository) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name, err := normalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `INSERT INTO players (name, created_at) VALUES (?, ?)`, name, toMillis(createdAt))
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read player id: %w", err)
	}
	return &models.Player{ID: int(id), Name: name, CreatedAt: fromMillis(toMillis(createdAt))}, nil
}

func (r *sqliteTournamentRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	var (
		p         models.Player
		createdAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}

func (r *sqliteTournamentRepository) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	p, err := r.scanPlayer(r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM players WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *sqliteTournamentRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *sqliteTournamentRepository) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *sqliteTournamentRepository) ClearPlayers(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		if sqliteErrorCode(err) == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
			return ErrPlayersHaveMatches
		}
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

func (r *sqliteTournamentRepository) RecordMatch(ctx context.Context, match *models.Match) error {
	if err := validateMatch(match); err != nil {
		return err
	}

	createdAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (player_one_id, player_two_id, winner_id, state, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		match.PlayerOneID,
		match.PlayerTwoID,
		match.WinnerID,
		match.State,
		toMillis(createdAt),
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read match id: %w", err)
	}
	match.ID = int(id)
	match.CreatedAt = fromMillis(toMillis(createdAt))
	return nil
}

func (r *sqliteTournamentRepository) ListMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_one_id, player_two_id, winner_id, state, created_at
		FROM matches
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var (
			m         models.Match
			createdAt int64
		)
		if scanErr := rows.Scan(&m.ID, &m.PlayerOneID, &m.PlayerTwoID, &m.WinnerID, &m.State, &createdAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		m.CreatedAt = fromMillis(createdAt)
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *sqliteTournamentRepository) ClearMatches(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *sqliteTournamentRepository) handleMatchError(err error) error {
	switch sqliteErrorCode(err) {
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrMatchPlayerInvalid
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		switch {
		case strings.Contains(err.Error(), "chk_matches_distinct_players"):
			return ErrMatchSamePlayer
		case strings.Contains(err.Error(), "chk_matches_winner"):
			return ErrMatchWinnerInvalid
		}
	}
	return fmt.Errorf("failed to record match: %w", err)
}

func sqliteErrorCode(err error) int {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}
