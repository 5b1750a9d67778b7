package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

// MemoryTournamentRepository keeps players and matches in process memory.
// It enforces the same referential rules as the SQL schema.
type MemoryTournamentRepository struct {
	mu           sync.RWMutex
	players      []models.Player
	matches      []models.Match
	nextPlayerID int
	nextMatchID  int
}

func NewMemoryTournamentRepository() *MemoryTournamentRepository {
	return &MemoryTournamentRepository{nextPlayerID: 1, nextMatchID: 1}
}

func (r *MemoryTournamentRepository) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := normalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := models.Player{ID: r.nextPlayerID, Name: name, CreatedAt: time.Now().UTC()}
	r.nextPlayerID++
	r.players = append(r.players, p)
	return &p, nil
}

func (r *MemoryTournamentRepository) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (r *MemoryTournamentRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]models.Player, len(r.players))
	copy(players, r.players)
	return players, nil
}

func (r *MemoryTournamentRepository) CountPlayers(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players), nil
}

func (r *MemoryTournamentRepository) ClearPlayers(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.matches) > 0 && len(r.players) > 0 {
		return ErrPlayersHaveMatches
	}
	r.players = nil
	return nil
}

func (r *MemoryTournamentRepository) RecordMatch(ctx context.Context, match *models.Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateMatch(match); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasPlayer(match.PlayerOneID) || !r.hasPlayer(match.PlayerTwoID) {
		return ErrMatchPlayerInvalid
	}

	match.ID = r.nextMatchID
	match.CreatedAt = time.Now().UTC()
	r.nextMatchID++
	r.matches = append(r.matches, *match)
	return nil
}

func (r *MemoryTournamentRepository) hasPlayer(id int) bool {
	for _, p := range r.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (r *MemoryTournamentRepository) ListMatches(ctx context.Context) ([]models.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Match, len(r.matches))
	copy(matches, r.matches)
	return matches, nil
}

func (r *MemoryTournamentRepository) ClearMatches(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = nil
	return nil
}
