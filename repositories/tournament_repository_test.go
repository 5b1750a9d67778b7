package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFactory func(t *testing.T) TournamentRepository

func backends() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(t *testing.T) TournamentRepository {
			return NewMemoryTournamentRepository()
		},
		"sqlite": func(t *testing.T) TournamentRepository {
			conn, err := db.Open("sqlite", ":memory:", time.Second)
			require.NoError(t, err)
			t.Cleanup(func() { _ = conn.Close() })
			return NewSQLiteTournamentRepository(conn)
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repo TournamentRepository)) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestRegisterAndCountPlayers(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		ctx := context.Background()

		count, err := repo.CountPlayers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		first, err := repo.RegisterPlayer(ctx, "  Chandra Nalaar ")
		require.NoError(t, err)
		assert.Equal(t, "Chandra Nalaar", first.Name)
		assert.NotZero(t, first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		second, err := repo.RegisterPlayer(ctx, "Chandra Nalaar")
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		count, err = repo.CountPlayers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		got, err := repo.GetPlayer(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, second.Name, got.Name)
	})
}

func TestRegisterPlayerRequiresName(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		_, err := repo.RegisterPlayer(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrPlayerNameRequired)
	})
}

func TestGetPlayerNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		_, err := repo.GetPlayer(context.Background(), 999)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestRecordAndListMatches(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		ctx := context.Background()
		a, err := repo.RegisterPlayer(ctx, "Markov Chaney")
		require.NoError(t, err)
		b, err := repo.RegisterPlayer(ctx, "Joe Malik")
		require.NoError(t, err)

		match := &models.Match{PlayerOneID: a.ID, PlayerTwoID: b.ID, WinnerID: a.ID}
		require.NoError(t, repo.RecordMatch(ctx, match))
		assert.NotZero(t, match.ID)
		assert.Equal(t, models.MatchStateCompleted, match.State)

		matches, err := repo.ListMatches(ctx)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, a.ID, matches[0].PlayerOneID)
		assert.Equal(t, b.ID, matches[0].PlayerTwoID)
		assert.Equal(t, a.ID, matches[0].WinnerID)
		assert.Equal(t, b.ID, matches[0].LoserID())
		assert.Equal(t, models.MatchStateCompleted, matches[0].State)

		players, err := repo.ListPlayers(ctx)
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, a.ID, players[0].ID)
		assert.Equal(t, b.ID, players[1].ID)
	})
}

func TestRecordMatchRejectsInvalidRecords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		ctx := context.Background()
		a, err := repo.RegisterPlayer(ctx, "Mao Tsu-hsi")
		require.NoError(t, err)
		b, err := repo.RegisterPlayer(ctx, "Atlanta Hope")
		require.NoError(t, err)

		tests := []struct {
			name  string
			match models.Match
			want  error
		}{
			{"same player twice", models.Match{PlayerOneID: a.ID, PlayerTwoID: a.ID, WinnerID: a.ID}, ErrMatchSamePlayer},
			{"winner not a side", models.Match{PlayerOneID: a.ID, PlayerTwoID: b.ID, WinnerID: b.ID + 100}, ErrMatchWinnerInvalid},
			{"unknown player", models.Match{PlayerOneID: a.ID, PlayerTwoID: b.ID + 100, WinnerID: a.ID}, ErrMatchPlayerInvalid},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m := tt.match
				assert.ErrorIs(t, repo.RecordMatch(ctx, &m), tt.want)
			})
		}

		matches, err := repo.ListMatches(ctx)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestClearPlayersWithMatchesFails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TournamentRepository) {
		ctx := context.Background()
		a, err := repo.RegisterPlayer(ctx, "Melpomene Murray")
		require.NoError(t, err)
		b, err := repo.RegisterPlayer(ctx, "Randy Schwartz")
		require.NoError(t, err)
		require.NoError(t, repo.RecordMatch(ctx, &models.Match{PlayerOneID: a.ID, PlayerTwoID: b.ID, WinnerID: b.ID}))

		assert.ErrorIs(t, repo.ClearPlayers(ctx), ErrPlayersHaveMatches)

		require.NoError(t, repo.ClearMatches(ctx))
		require.NoError(t, repo.ClearPlayers(ctx))

		count, err := repo.CountPlayers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		matches, err := repo.ListMatches(ctx)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestNewSelectsBackend(t *testing.T) {
	repo, err := New("memory", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryTournamentRepository{}, repo)

	_, err = New("oracle", nil)
	assert.ErrorIs(t, err, ErrUnsupportedDatabase)
}

func TestMemoryRepositoryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryTournamentRepository()
	_, err := repo.ListPlayers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteRepositoryInsideTransaction(t *testing.T) {
	conn, err := db.Open("sqlite", ":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ctx := context.Background()

	tx, err := conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = NewSQLiteTournamentRepository(tx).RegisterPlayer(ctx, "Rolled Back")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	count, err := NewSQLiteTournamentRepository(conn).CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
