package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/storage/storagetest"
)

func newTestStorage(t *testing.T, cfg Config) (*Storage, *miniredis.Miniredis) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	return NewWithClient(client, cfg), mini
}

func TestStorageSuite(t *testing.T) {
	s := &storagetest.Suite{}
	s.Open = func() storage.Storage {
		st, _ := newTestStorage(s.T(), DefaultConfig())
		return st
	}
	suite.Run(t, s)
}

func TestRecordsUseNamespacedKeys(t *testing.T) {
	st, mini := newTestStorage(t, DefaultConfig())
	ctx := context.Background()

	tournament := &storage.Tournament{ID: uuid.New(), Name: "Open", Rounds: 1}
	require.NoError(t, st.SaveTournament(ctx, tournament))
	player := &storage.Player{ID: uuid.New(), TournamentID: tournament.ID, Name: "Alice"}
	require.NoError(t, st.SavePlayer(ctx, player))

	assert.True(t, mini.Exists("pairings:tournament:"+tournament.ID.String()))
	ids, err := mini.List("pairings:idx:tournament_players:" + tournament.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{player.ID.String()}, ids)
}

func TestTTLAppliesToRecordsAndIndexes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = time.Hour
	st, mini := newTestStorage(t, cfg)
	ctx := context.Background()

	tournament := &storage.Tournament{ID: uuid.New(), Name: "Open", Rounds: 1}
	require.NoError(t, st.SaveTournament(ctx, tournament))
	player := &storage.Player{ID: uuid.New(), TournamentID: tournament.ID, Name: "Alice"}
	require.NoError(t, st.SavePlayer(ctx, player))

	assert.Equal(t, time.Hour, mini.TTL("pairings:player:"+player.ID.String()))
	assert.Equal(t, time.Hour, mini.TTL("pairings:idx:tournament_players:"+tournament.ID.String()))

	mini.FastForward(2 * time.Hour)
	_, err := st.GetPlayer(ctx, player.ID)
	assert.ErrorIs(t, err, storage.ErrPlayerNotFound)
}

func TestExpiredRecordsAreSkippedInLists(t *testing.T) {
	st, mini := newTestStorage(t, DefaultConfig())
	ctx := context.Background()

	tournament := &storage.Tournament{ID: uuid.New(), Name: "Open", Rounds: 1}
	require.NoError(t, st.SaveTournament(ctx, tournament))
	alice := &storage.Player{ID: uuid.New(), TournamentID: tournament.ID, Name: "Alice"}
	bob := &storage.Player{ID: uuid.New(), TournamentID: tournament.ID, Name: "Bob"}
	require.NoError(t, st.SavePlayer(ctx, alice))
	require.NoError(t, st.SavePlayer(ctx, bob))

	mini.Del("pairings:player:" + alice.ID.String())

	players, err := st.GetPlayersForTournament(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Bob", players[0].Name)
}
