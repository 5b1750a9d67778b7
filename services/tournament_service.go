package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/events"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
	"golang.org/x/sync/errgroup"
)

// Broadcaster pushes live updates to websocket subscribers.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type TournamentService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	PlayerStandings(ctx context.Context) ([]models.Standing, error)
	StandingsOverview(ctx context.Context) (*StandingsView, error)
	SwissPairings(ctx context.Context) ([]models.Pairing, error)
	DeleteMatches(ctx context.Context) error
	DeletePlayers(ctx context.Context) error
	ExportStandings(ctx context.Context) (*storage.UploadResult, error)
}

// StandingsView is the standings table plus the number of the round the
// pairings would be generated for.
type StandingsView struct {
	Round     int               `json:"round"`
	Standings []models.Standing `json:"standings"`
}

// StandingsSnapshot is the document uploaded by ExportStandings.
type StandingsSnapshot struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	PairingSystem string            `json:"pairing_system"`
	Round         int               `json:"round"`
	Standings     []models.Standing `json:"standings"`
	Pairings      []models.Pairing  `json:"pairings,omitempty"`
}

type TournamentServiceDeps struct {
	Repo        repositories.TournamentRepository
	Generator   brackets.PairingGenerator
	Broadcaster Broadcaster
	Publisher   events.Publisher
	Uploader    storage.FileUploader
	Logger      *slog.Logger
}

type tournamentService struct {
	repo        repositories.TournamentRepository
	generator   brackets.PairingGenerator
	broadcaster Broadcaster
	publisher   events.Publisher
	uploader    storage.FileUploader
	logger      *slog.Logger
	now         func() time.Time
}

func NewTournamentService(deps TournamentServiceDeps) TournamentService {
	s := &tournamentService{
		repo:        deps.Repo,
		generator:   deps.Generator,
		broadcaster: deps.Broadcaster,
		publisher:   deps.Publisher,
		uploader:    deps.Uploader,
		logger:      deps.Logger,
		now:         time.Now,
	}
	if s.generator == nil {
		s.generator = brackets.NewSwissGenerator()
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.repo.RegisterPlayer(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNameRequired) {
			return nil, ErrPlayerNameRequired
		}
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	s.logger.Info("player registered", slog.Int("player_id", player.ID))
	s.notify(ctx, events.PlayerRegistered, player)
	return player, nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.repo.CountPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// ReportMatch records that winnerID beat loserID.
func (s *tournamentService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	if winnerID <= 0 || loserID <= 0 {
		return nil, ErrInvalidPlayerID
	}
	if winnerID == loserID {
		return nil, ErrSelfMatch
	}

	for _, id := range []int{winnerID, loserID} {
		if _, err := s.repo.GetPlayer(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
			}
			return nil, fmt.Errorf("failed to load player %d: %w", id, err)
		}
	}

	match := &models.Match{
		PlayerOneID: winnerID,
		PlayerTwoID: loserID,
		WinnerID:    winnerID,
		State:       models.MatchStateCompleted,
	}
	if err := s.repo.RecordMatch(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchPlayerInvalid):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrMatchSamePlayer):
			return nil, ErrSelfMatch
		}
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID), slog.Int("winner_id", match.WinnerID), slog.Int("loser_id", match.LoserID()))
	s.notify(ctx, events.MatchReported, match)
	return match, nil
}

// loadSnapshot reads players and matches concurrently. Either failure aborts
// the whole read.
func (s *tournamentService) loadSnapshot(ctx context.Context) ([]models.Player, []models.Match, error) {
	var (
		players []models.Player
		matches []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.repo.ListPlayers(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.repo.ListMatches(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return players, matches, nil
}

func (s *tournamentService) PlayerStandings(ctx context.Context) ([]models.Standing, error) {
	players, matches, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandings(players, matches)
}

func (s *tournamentService) StandingsOverview(ctx context.Context) (*StandingsView, error) {
	players, matches, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	standings, err := brackets.ComputeStandings(players, matches)
	if err != nil {
		return nil, err
	}
	return &StandingsView{Round: NextRound(len(players), len(matches)), Standings: standings}, nil
}

// SwissPairings computes fresh standings and pairs adjacent entries.
func (s *tournamentService) SwissPairings(ctx context.Context) ([]models.Pairing, error) {
	standings, err := s.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}
	pairings, err := s.generator.GeneratePairings(standings)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("pairings generated",
		slog.String("system", s.generator.GetName()), slog.Int("pairings", len(pairings)))
	return pairings, nil
}

func (s *tournamentService) DeleteMatches(ctx context.Context) error {
	if err := s.repo.ClearMatches(ctx); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	s.logger.Info("all matches deleted")
	s.notify(ctx, events.MatchesCleared, nil)
	return nil
}

func (s *tournamentService) DeletePlayers(ctx context.Context) error {
	if err := s.repo.ClearPlayers(ctx); err != nil {
		if errors.Is(err, repositories.ErrPlayersHaveMatches) {
			return ErrPlayersHaveMatches
		}
		return fmt.Errorf("failed to delete players: %w", err)
	}
	s.logger.Info("all players deleted")
	s.notify(ctx, events.PlayersCleared, nil)
	return nil
}

// ExportStandings uploads the current standings, and the next round's
// pairings when the field is even, as a JSON document.
func (s *tournamentService) ExportStandings(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}

	players, matches, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	standings, err := brackets.ComputeStandings(players, matches)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	snapshot := StandingsSnapshot{
		GeneratedAt:   now,
		PairingSystem: s.generator.GetName(),
		Round:         NextRound(len(players), len(matches)),
		Standings:     standings,
	}
	pairings, err := s.generator.GeneratePairings(standings)
	switch {
	case err == nil:
		snapshot.Pairings = pairings
	case errors.Is(err, brackets.ErrOddPlayerCount):
		s.logger.Warn("exporting standings without pairings", slog.Int("players", len(standings)))
	default:
		return nil, err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings snapshot: %w", err)
	}

	result, err := s.uploader.Upload(ctx, storage.SnapshotKey(now), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to export standings: %w", err)
	}
	s.logger.Info("standings exported", slog.String("key", result.Key))
	return result, nil
}

// NextRound is the 1-based number of the round about to be paired, assuming
// every completed round paired the whole field. It is 0 for an empty or odd
// field.
func NextRound(players, matches int) int {
	if players == 0 || players%2 != 0 {
		return 0
	}
	return matches/(players/2) + 1
}

// notify fans a write out to websocket subscribers and the event bus. Neither
// failure affects the write that already succeeded.
func (s *tournamentService) notify(ctx context.Context, eventType string, payload interface{}) {
	if err := s.publisher.Publish(ctx, events.Event{Type: eventType, OccurredAt: s.now().UTC(), Payload: payload}); err != nil {
		s.logger.Error("failed to publish event", slog.String("event", eventType), slog.Any("error", err))
	}

	if s.broadcaster == nil {
		return
	}
	switch eventType {
	case events.PlayersCleared:
		s.broadcaster.BroadcastToRoom(brackets.TournamentRoom, brackets.WebSocketMessage{
			Type: brackets.MessagePlayersCleared, RoomID: brackets.TournamentRoom,
		})
	case events.MatchesCleared:
		s.broadcaster.BroadcastToRoom(brackets.TournamentRoom, brackets.WebSocketMessage{
			Type: brackets.MessageMatchesCleared, RoomID: brackets.TournamentRoom,
		})
	default:
		standings, err := s.PlayerStandings(ctx)
		if err != nil {
			s.logger.Error("failed to compute standings for broadcast", slog.Any("error", err))
			return
		}
		s.broadcaster.BroadcastToRoom(brackets.TournamentRoom, brackets.WebSocketMessage{
			Type: brackets.MessageStandingsUpdated, Payload: standings, RoomID: brackets.TournamentRoom,
		})
	}
}
