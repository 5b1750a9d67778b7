package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/events"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok && roomID == brackets.TournamentRoom {
		b.messages = append(b.messages, msg)
	}
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.messages))
	for _, m := range b.messages {
		out = append(out, m.Type)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *memoryUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

type fixture struct {
	svc         TournamentService
	repo        *repositories.MemoryTournamentRepository
	broadcaster *recordingBroadcaster
	publisher   *recordingPublisher
	uploader    *memoryUploader
}

func newFixture(t *testing.T, withUploader bool) *fixture {
	t.Helper()
	f := &fixture{
		repo:        repositories.NewMemoryTournamentRepository(),
		broadcaster: &recordingBroadcaster{},
		publisher:   &recordingPublisher{},
	}
	deps := TournamentServiceDeps{
		Repo:        f.repo,
		Broadcaster: f.broadcaster,
		Publisher:   f.publisher,
	}
	if withUploader {
		f.uploader = &memoryUploader{}
		deps.Uploader = f.uploader
	}
	f.svc = NewTournamentService(deps)
	return f
}

func (f *fixture) register(t *testing.T, names ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(names))
	for _, name := range names {
		p, err := f.svc.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func TestRegisterPlayer(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	p, err := f.svc.RegisterPlayer(ctx, " Chandra Nalaar ")
	require.NoError(t, err)
	assert.Equal(t, "Chandra Nalaar", p.Name)

	count, err := f.svc.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.svc.RegisterPlayer(ctx, "  ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	assert.Equal(t, []string{events.PlayerRegistered}, f.publisher.types())
	assert.Equal(t, []string{brackets.MessageStandingsUpdated}, f.broadcaster.types())
}

func TestReportMatchValidation(t *testing.T) {
	f := newFixture(t, false)
	ids := f.register(t, "Twilight Sparkle", "Fluttershy")

	tests := []struct {
		name          string
		winner, loser int
		want          error
	}{
		{"zero winner", 0, ids[1], ErrInvalidPlayerID},
		{"negative loser", ids[0], -3, ErrInvalidPlayerID},
		{"self match", ids[0], ids[0], ErrSelfMatch},
		{"unknown loser", ids[0], 999, ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ReportMatch(context.Background(), tt.winner, tt.loser)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	matches, err := f.repo.ListMatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReportMatchUpdatesStandings(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ids := f.register(t, "Bruno Walton", "Boots O'Neal", "Cathy Burton", "Diane Grant")

	match, err := f.svc.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.Equal(t, ids[0], match.WinnerID)
	assert.Equal(t, ids[1], match.LoserID())

	_, err = f.svc.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	standings, err := f.svc.PlayerStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)

	order := []int{standings[0].PlayerID, standings[1].PlayerID, standings[2].PlayerID, standings[3].PlayerID}
	assert.Equal(t, []int{ids[0], ids[2], ids[1], ids[3]}, order)
	for _, s := range standings {
		assert.Equal(t, 1, s.MatchesPlayed)
	}

	pairings, err := f.svc.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	assert.Equal(t, ids[0], pairings[0].Player1ID)
	assert.Equal(t, ids[2], pairings[0].Player2ID)
	assert.Equal(t, ids[1], pairings[1].Player1ID)
	assert.Equal(t, ids[3], pairings[1].Player2ID)

	view, err := f.svc.StandingsOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Round)

	assert.Contains(t, f.publisher.types(), events.MatchReported)
}

func TestSwissPairingsOddField(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "A", "B", "C")

	_, err := f.svc.SwissPairings(context.Background())
	assert.ErrorIs(t, err, brackets.ErrOddPlayerCount)

	var oddErr *brackets.OddPlayerCountError
	require.True(t, errors.As(err, &oddErr))
	assert.Equal(t, 3, oddErr.Count)
}

func TestDeletePlayersAndMatches(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ids := f.register(t, "A", "B")
	_, err := f.svc.ReportMatch(ctx, ids[1], ids[0])
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeletePlayers(ctx), ErrPlayersHaveMatches)

	require.NoError(t, f.svc.DeleteMatches(ctx))
	require.NoError(t, f.svc.DeletePlayers(ctx))

	count, err := f.svc.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	types := f.broadcaster.types()
	assert.Equal(t, brackets.MessagePlayersCleared, types[len(types)-1])
	assert.Equal(t, brackets.MessageMatchesCleared, types[len(types)-2])
	assert.Equal(t, events.PlayersCleared, f.publisher.types()[len(f.publisher.types())-1])
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t, false)
	f.publisher.err = errors.New("broker down")

	p, err := f.svc.RegisterPlayer(context.Background(), "Ada")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestExportStandings(t *testing.T) {
	t.Run("disabled without uploader", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.svc.ExportStandings(context.Background())
		assert.ErrorIs(t, err, ErrExportDisabled)
	})

	t.Run("uploads snapshot", func(t *testing.T) {
		f := newFixture(t, true)
		ctx := context.Background()
		ids := f.register(t, "A", "B")
		_, err := f.svc.ReportMatch(ctx, ids[0], ids[1])
		require.NoError(t, err)

		result, err := f.svc.ExportStandings(ctx)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Key, "standings/"))
		assert.Equal(t, "application/json", f.uploader.contentType)

		var snapshot StandingsSnapshot
		require.NoError(t, json.Unmarshal(f.uploader.body, &snapshot))
		assert.Equal(t, 2, snapshot.Round)
		require.Len(t, snapshot.Standings, 2)
		assert.Equal(t, ids[0], snapshot.Standings[0].PlayerID)
		require.Len(t, snapshot.Pairings, 1)
		assert.WithinDuration(t, time.Now(), snapshot.GeneratedAt, time.Minute)
	})

	t.Run("odd field exports without pairings", func(t *testing.T) {
		f := newFixture(t, true)
		f.register(t, "A", "B", "C")

		_, err := f.svc.ExportStandings(context.Background())
		require.NoError(t, err)

		var snapshot StandingsSnapshot
		require.NoError(t, json.Unmarshal(f.uploader.body, &snapshot))
		assert.Len(t, snapshot.Standings, 3)
		assert.Empty(t, snapshot.Pairings)
		assert.Zero(t, snapshot.Round)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t, true)
		f.uploader.err = errors.New("bucket missing")
		_, err := f.svc.ExportStandings(context.Background())
		assert.Error(t, err)
	})
}

func TestNextRound(t *testing.T) {
	tests := []struct {
		players, matches, want int
	}{
		{0, 0, 0},
		{3, 1, 0},
		{4, 0, 1},
		{4, 2, 2},
		{4, 3, 2},
		{8, 12, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextRound(tt.players, tt.matches), "players=%d matches=%d", tt.players, tt.matches)
	}
}

// brokenRepository serves writes from memory but can fail or corrupt reads.
type brokenRepository struct {
	*repositories.MemoryTournamentRepository
	playersErr error
	matchesErr error
	matches    []models.Match
}

func (r *brokenRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if r.playersErr != nil {
		return nil, r.playersErr
	}
	return r.MemoryTournamentRepository.ListPlayers(ctx)
}

func (r *brokenRepository) ListMatches(ctx context.Context) ([]models.Match, error) {
	if r.matchesErr != nil {
		return nil, r.matchesErr
	}
	if r.matches != nil {
		return r.matches, nil
	}
	return r.MemoryTournamentRepository.ListMatches(ctx)
}

func newBrokenService(t *testing.T, repo *brokenRepository) (TournamentService, *memoryUploader) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"A", "B"} {
		_, err := repo.MemoryTournamentRepository.RegisterPlayer(ctx, name)
		require.NoError(t, err)
	}
	uploader := &memoryUploader{}
	return NewTournamentService(TournamentServiceDeps{Repo: repo, Uploader: uploader}), uploader
}

func TestReadFailuresReturnNoPartialResult(t *testing.T) {
	errDown := errors.New("db down")

	tests := []struct {
		name string
		repo func() *brokenRepository
	}{
		{"players", func() *brokenRepository {
			return &brokenRepository{MemoryTournamentRepository: repositories.NewMemoryTournamentRepository(), playersErr: errDown}
		}},
		{"matches", func() *brokenRepository {
			return &brokenRepository{MemoryTournamentRepository: repositories.NewMemoryTournamentRepository(), matchesErr: errDown}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, uploader := newBrokenService(t, tt.repo())
			ctx := context.Background()

			standings, err := svc.PlayerStandings(ctx)
			assert.ErrorIs(t, err, errDown)
			assert.Nil(t, standings)

			pairings, err := svc.SwissPairings(ctx)
			assert.ErrorIs(t, err, errDown)
			assert.Nil(t, pairings)

			view, err := svc.StandingsOverview(ctx)
			assert.ErrorIs(t, err, errDown)
			assert.Nil(t, view)

			result, err := svc.ExportStandings(ctx)
			assert.ErrorIs(t, err, errDown)
			assert.Nil(t, result)
			assert.Nil(t, uploader.body)
		})
	}
}

func TestDanglingMatchReferenceReachesCaller(t *testing.T) {
	repo := &brokenRepository{
		MemoryTournamentRepository: repositories.NewMemoryTournamentRepository(),
		matches: []models.Match{
			{ID: 7, PlayerOneID: 1, PlayerTwoID: 99, WinnerID: 1, State: models.MatchStateCompleted},
		},
	}
	svc, uploader := newBrokenService(t, repo)
	ctx := context.Background()

	standings, err := svc.PlayerStandings(ctx)
	assert.Nil(t, standings)
	var refErr *brackets.InconsistentMatchReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, 7, refErr.MatchID)
	assert.Equal(t, "player_two_id", refErr.Field)
	assert.Equal(t, 99, refErr.PlayerID)

	_, err = svc.SwissPairings(ctx)
	assert.ErrorIs(t, err, brackets.ErrInconsistentMatchReference)

	_, err = svc.StandingsOverview(ctx)
	assert.ErrorIs(t, err, brackets.ErrInconsistentMatchReference)

	_, err = svc.ExportStandings(ctx)
	assert.ErrorIs(t, err, brackets.ErrInconsistentMatchReference)
	assert.Nil(t, uploader.body)
}

func TestExportRecordsPairingSystem(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "A", "B")

	_, err := f.svc.ExportStandings(context.Background())
	require.NoError(t, err)

	var snapshot StandingsSnapshot
	require.NoError(t, json.Unmarshal(f.uploader.body, &snapshot))
	assert.Equal(t, "Swiss", snapshot.PairingSystem)
}
