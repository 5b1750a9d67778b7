package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayersHaveMatches  = errors.New("players are still referenced by recorded matches")
	ErrMatchPlayerInvalid  = errors.New("match player conflict or invalid")
	ErrMatchSamePlayer     = errors.New("match players must be distinct")
	ErrMatchWinnerInvalid  = errors.New("match winner must be one of the two players")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrUnsupportedDatabase = errors.New("unsupported database driver")
)

// TournamentRepository is the single persistence capability the tournament
// service depends on. Implementations assign player and match ids.
type TournamentRepository interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ClearPlayers(ctx context.Context) error

	RecordMatch(ctx context.Context, match *models.Match) error
	ListMatches(ctx context.Context) ([]models.Match, error)
	ClearMatches(ctx context.Context) error
}

// New picks the repository implementation for driver. The memory driver
// ignores db.
func New(driver string, db *sql.DB) (TournamentRepository, error) {
	switch driver {
	case "postgres":
		return NewPostgresTournamentRepository(db), nil
	case "sqlite":
		return NewSQLiteTournamentRepository(db), nil
	case "memory":
		return NewMemoryTournamentRepository(), nil
	default:
		return nil, ErrUnsupportedDatabase
	}
}
