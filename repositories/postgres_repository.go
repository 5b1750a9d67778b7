package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/lib/pq"
)

type postgresTournamentRepository struct {
	db SQLExecutor
}

func NewPostgresTournamentRepository(db SQLExecutor) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name, err := normalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	p := &models.Player{Name: name}
	query := `INSERT INTO players (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return p, nil
}

func (r *postgresTournamentRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresTournamentRepository) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, name, created_at FROM players WHERE id = $1`
	p, err := r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresTournamentRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
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

func (r *postgresTournamentRepository) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *postgresTournamentRepository) ClearPlayers(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return ErrPlayersHaveMatches
		}
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) RecordMatch(ctx context.Context, match *models.Match) error {
	if err := validateMatch(match); err != nil {
		return err
	}

	query := `
		INSERT INTO matches (player_one_id, player_two_id, winner_id, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		match.PlayerOneID,
		match.PlayerTwoID,
		match.WinnerID,
		match.State,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresTournamentRepository) ListMatches(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT id, player_one_id, player_two_id, winner_id, state, created_at
		FROM matches
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(&m.ID, &m.PlayerOneID, &m.PlayerTwoID, &m.WinnerID, &m.State, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresTournamentRepository) ClearMatches(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return ErrMatchPlayerInvalid
		case "23514": // check_violation
			switch pqErr.Constraint {
			case "chk_matches_distinct_players":
				return ErrMatchSamePlayer
			case "chk_matches_winner":
				return ErrMatchWinnerInvalid
			}
		}
	}
	return fmt.Errorf("failed to record match: %w", err)
}
