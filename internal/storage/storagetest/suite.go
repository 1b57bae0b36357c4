// Package storagetest holds the behaviour every storage implementation must share.
package storagetest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Suite runs against a fresh storage created by Open before each test.
type Suite struct {
	suite.Suite
	Open func() storage.Storage

	storage storage.Storage
	ctx     context.Context
	now     time.Time
}

func (s *Suite) SetupTest() {
	s.storage = s.Open()
	s.ctx = context.Background()
	s.now = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func (s *Suite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *Suite) tournament(name string) *storage.Tournament {
	t := &storage.Tournament{ID: uuid.New(), Name: name, Rounds: 3, CreatedAt: s.now}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))
	return t
}

func (s *Suite) player(t *storage.Tournament, name string, rating uint32) *storage.Player {
	p := &storage.Player{ID: uuid.New(), TournamentID: t.ID, Name: name, Rating: rating, CreatedAt: s.now}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	return p
}

func (s *Suite) game(t *storage.Tournament, round uint32, white, black *storage.Player) *storage.Game {
	g := &storage.Game{ID: uuid.New(), TournamentID: t.ID, Round: round, White: white.ID, CreatedAt: s.now}
	if black != nil {
		g.Black = uuid.NullUUID{UUID: black.ID, Valid: true}
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))
	return g
}

// Tournament tests

func (s *Suite) TestSaveAndGetTournament() {
	t := s.tournament("Spring Open")

	retrieved, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(*t, *retrieved)
}

func (s *Suite) TestGetTournamentNotFound() {
	_, err := s.storage.GetTournament(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrTournamentNotFound)
}

func (s *Suite) TestSaveTournamentReplaces() {
	t := s.tournament("Spring Open")
	t.Name = "Summer Open"
	t.PairedRounds = 2
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))

	retrieved, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("Summer Open", retrieved.Name)
	s.Equal(uint32(2), retrieved.PairedRounds)
}

func (s *Suite) TestReturnedRecordsAreCopies() {
	t := s.tournament("Spring Open")

	retrieved, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	retrieved.Name = "changed"

	again, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("Spring Open", again.Name)
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	t := s.tournament("Spring Open")
	p := s.player(t, "Alice", 1500)

	retrieved, err := s.storage.GetPlayer(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*p, *retrieved)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrPlayerNotFound)
}

func (s *Suite) TestPlayersKeepSignUpOrder() {
	t := s.tournament("Spring Open")
	other := s.tournament("Other")
	carol := s.player(t, "Carol", 1600)
	alice := s.player(t, "Alice", 1200)
	s.player(other, "Mallory", 2000)
	bob := s.player(t, "Bob", 800)

	alice.Withdrawn = true
	s.Require().NoError(s.storage.SavePlayer(s.ctx, alice))

	players, err := s.storage.GetPlayersForTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal([]uuid.UUID{carol.ID, alice.ID, bob.ID}, []uuid.UUID{players[0].ID, players[1].ID, players[2].ID})
	s.True(players[1].Withdrawn)
}

func (s *Suite) TestPlayersForUnknownTournamentIsEmpty() {
	players, err := s.storage.GetPlayersForTournament(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(players)
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	t := s.tournament("Spring Open")
	white := s.player(t, "Alice", 1500)
	black := s.player(t, "Bob", 1400)
	g := s.game(t, 1, white, black)

	retrieved, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(*g, *retrieved)
	s.False(retrieved.IsBye())
}

func (s *Suite) TestByeHasNoBlackPlayer() {
	t := s.tournament("Spring Open")
	g := s.game(t, 1, s.player(t, "Alice", 1500), nil)

	retrieved, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(retrieved.IsBye())
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrGameNotFound)
}

func (s *Suite) TestSaveGameRecordsResult() {
	t := s.tournament("Spring Open")
	g := s.game(t, 1, s.player(t, "Alice", 1500), s.player(t, "Bob", 1400))

	g.Result = wire.ResultBlackWin
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	retrieved, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(wire.ResultBlackWin, retrieved.Result)

	games, err := s.storage.GetGamesForTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Len(games, 1, "replacing a game does not index it twice")
}

func (s *Suite) TestGamesKeepPairingOrder() {
	t := s.tournament("Spring Open")
	alice := s.player(t, "Alice", 1500)
	bob := s.player(t, "Bob", 1400)
	carol := s.player(t, "Carol", 1300)

	first := s.game(t, 1, alice, bob)
	bye := s.game(t, 1, carol, nil)
	second := s.game(t, 2, carol, alice)

	games, err := s.storage.GetGamesForTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(first.ID, games[0].ID)
	s.Equal(bye.ID, games[1].ID)
	s.Equal(second.ID, games[2].ID)

	aliceGames, err := s.storage.GetGamesForPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(aliceGames, 2)
	s.Equal(first.ID, aliceGames[0].ID)
	s.Equal(second.ID, aliceGames[1].ID)

	carolGames, err := s.storage.GetGamesForPlayer(s.ctx, carol.ID)
	s.Require().NoError(err)
	s.Require().Len(carolGames, 2)
	s.Equal(bye.ID, carolGames[0].ID)
	s.True(carolGames[1].Involves(carol.ID))
}
