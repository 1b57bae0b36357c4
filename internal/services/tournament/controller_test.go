package tournament

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pairings-web/internal/dependencies/mocks"
	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/services/pairing"
	"github.com/mcoot/pairings-web/internal/services/signing"
	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/storage/memory"
	"github.com/mcoot/pairings-web/internal/testutil"
	"github.com/mcoot/pairings-web/internal/wire"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	signer     *signing.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	var err error
	s.storage = memory.New()
	s.signer, err = signing.New([]byte("controller-test-secret"))
	s.Require().NoError(err)
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.signer, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) signed(id uuid.UUID) identity.Identity {
	return s.signer.Sign(id)
}

// forged carries a well-formed proof that was not issued for id.
func (s *ControllerSuite) forged(id uuid.UUID) identity.Identity {
	other := s.signer.Sign(uuid.New())
	proof, _ := other.Proof()
	forged, err := identity.Mint(id[:], proof.Algorithm, proof.Digest)
	s.Require().NoError(err)
	return forged
}

func (s *ControllerSuite) createTournament(rounds uint32) *Tournament {
	t, err := s.controller.CreateTournament(s.ctx, "Test", rounds)
	s.Require().NoError(err)
	return t
}

func (s *ControllerSuite) signUp(t *Tournament, name string, rating uint32) *Player {
	p, err := s.controller.SignUp(s.ctx, identity.New(t.ID), name, rating)
	s.Require().NoError(err)
	return p
}

func ptr[T any](v T) *T { return &v }

// CreateTournament tests

func (s *ControllerSuite) TestCreateTournamentIsPersistedAndSigned() {
	id := uuid.MustParse("8f6a3c1e-0d2b-4c5a-9e7f-112233445566")
	s.random.QueueUUID(id)

	t := s.createTournament(3)

	s.Equal(id, t.ID)
	s.True(t.Signed)
	s.Equal(uint32(3), t.Rounds)
	s.Equal(s.clock.Now(), t.CreatedAt)

	stored, err := s.storage.GetTournament(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Test", stored.Name)
}

func (s *ControllerSuite) TestCreateTournamentNeedsNameAndRounds() {
	_, err := s.controller.CreateTournament(s.ctx, "  ", 3)
	s.ErrorIs(err, ErrIncomplete)

	_, err = s.controller.CreateTournament(s.ctx, "Test", 0)
	s.ErrorIs(err, ErrIncomplete)
}

// GetTournament tests

func (s *ControllerSuite) TestGetTournamentEchoesOnlyValidProofs() {
	t := s.createTournament(1)

	anonymous, err := s.controller.GetTournament(s.ctx, identity.New(t.ID))
	s.Require().NoError(err)
	s.False(anonymous.Signed)

	signed, err := s.controller.GetTournament(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	s.True(signed.Signed)

	_, err = s.controller.GetTournament(s.ctx, s.forged(t.ID))
	s.ErrorIs(err, ErrWrongProof)
}

func (s *ControllerSuite) TestGetTournamentNotFound() {
	_, err := s.controller.GetTournament(s.ctx, identity.New(uuid.New()))
	s.ErrorIs(err, storage.ErrTournamentNotFound)
}

// UpdateTournament tests

func (s *ControllerSuite) TestUpdateTournamentNeedsProof() {
	t := s.createTournament(1)
	update := TournamentUpdate{Name: ptr("Renamed")}

	_, err := s.controller.UpdateTournament(s.ctx, identity.New(t.ID), update)
	s.ErrorIs(err, ErrMissingProof)

	_, err = s.controller.UpdateTournament(s.ctx, s.forged(t.ID), update)
	s.ErrorIs(err, ErrWrongProof)

	updated, err := s.controller.UpdateTournament(s.ctx, s.signed(t.ID), update)
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Equal(uint32(1), updated.Rounds)
}

func (s *ControllerSuite) TestUpdateTournamentCannotDropPairedRounds() {
	t := s.createTournament(2)
	s.signUp(t, "Alice", 1500)
	s.signUp(t, "Bob", 1400)
	_, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)

	_, err = s.controller.UpdateTournament(s.ctx, s.signed(t.ID), TournamentUpdate{Rounds: ptr(uint32(0))})
	s.ErrorIs(err, ErrIncomplete)

	updated, err := s.controller.UpdateTournament(s.ctx, s.signed(t.ID), TournamentUpdate{Rounds: ptr(uint32(1))})
	s.Require().NoError(err)
	s.Equal(uint32(1), updated.Rounds)
}

// SignUp and player tests

func (s *ControllerSuite) TestSignUpNeedsNoProof() {
	t := s.createTournament(1)

	p := s.signUp(t, "Alice", 1500)

	s.True(p.Signed)
	s.Equal(t.ID, p.TournamentID)
	s.Equal(t.ID, p.Tournament.ID)
	s.True(p.Active())
}

func (s *ControllerSuite) TestSignUpToUnknownTournament() {
	_, err := s.controller.SignUp(s.ctx, identity.New(uuid.New()), "Alice", 1500)
	s.ErrorIs(err, storage.ErrTournamentNotFound)
}

func (s *ControllerSuite) TestPlayersKeepSignUpOrderAndDelegateProof() {
	t := s.createTournament(1)
	s.signUp(t, "Alice", 1200)
	s.signUp(t, "Bob", 800)
	s.signUp(t, "Carol", 1600)

	players, err := s.controller.Players(s.ctx, identity.New(t.ID))
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal([]string{"Alice", "Bob", "Carol"}, []string{players[0].Name, players[1].Name, players[2].Name})
	s.False(players[0].Signed)

	players, err = s.controller.Players(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	for _, p := range players {
		s.True(p.Signed)
	}
}

func (s *ControllerSuite) TestUpdatePlayerWithOwnProof() {
	t := s.createTournament(1)
	p := s.signUp(t, "Alice", 1200)

	updated, err := s.controller.UpdatePlayer(s.ctx, s.signed(p.ID), identity.Identity{}, PlayerUpdate{
		Rating:    ptr(uint32(1300)),
		Withdrawn: ptr(true),
		Expelled:  ptr(false),
	})
	s.Require().NoError(err)
	s.Equal(uint32(1300), updated.Rating)
	s.True(updated.Withdrawn)
	s.True(updated.Signed)
}

func (s *ControllerSuite) TestUpdatePlayerWithoutProof() {
	t := s.createTournament(1)
	p := s.signUp(t, "Alice", 1200)

	_, err := s.controller.UpdatePlayer(s.ctx, identity.New(p.ID), identity.New(t.ID), PlayerUpdate{Name: ptr("Alicia")})
	s.ErrorIs(err, ErrMissingProof)
}

func (s *ControllerSuite) TestExpelNeedsTournamentProof() {
	t := s.createTournament(1)
	p := s.signUp(t, "Alice", 1200)
	expel := PlayerUpdate{Expelled: ptr(true)}

	_, err := s.controller.UpdatePlayer(s.ctx, s.signed(p.ID), identity.Identity{}, expel)
	s.ErrorIs(err, ErrMissingProof)

	other := s.createTournament(1)
	_, err = s.controller.UpdatePlayer(s.ctx, identity.New(p.ID), s.signed(other.ID), expel)
	s.ErrorIs(err, ErrWrongProof)

	updated, err := s.controller.UpdatePlayer(s.ctx, identity.New(p.ID), s.signed(t.ID), expel)
	s.Require().NoError(err)
	s.True(updated.Expelled)
	s.False(updated.Signed)
}

// AdvancePairing tests

func (s *ControllerSuite) TestAdvancePairingWithOddPlayers() {
	t := s.createTournament(1)
	alice := s.signUp(t, "Alice", 1200)
	bob := s.signUp(t, "Bob", 800)
	carol := s.signUp(t, "Carol", 1600)

	games, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	s.Require().Len(games, 2)

	s.Equal(carol.ID, games[0].White.ID)
	s.Equal(alice.ID, games[0].Black.ID)
	s.Equal(bob.ID, games[1].White.ID)
	s.Nil(games[1].Black)
	s.True(games[1].IsBye())
	for _, g := range games {
		s.Equal(uint32(1), g.Round)
		s.True(g.Signed)
		s.Equal(t.ID, g.Tournament.ID)
	}

	stored, err := s.storage.GetTournament(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(uint32(1), stored.PairedRounds)

	_, err = s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.ErrorIs(err, ErrNoMoreRounds)
}

func (s *ControllerSuite) TestAdvancePairingNeedsPlayers() {
	t := s.createTournament(1)
	s.signUp(t, "Alice", 1200)

	_, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.ErrorIs(err, pairing.ErrNotEnoughPlayers)
}

func (s *ControllerSuite) TestAdvancePairingNeedsProof() {
	t := s.createTournament(1)

	_, err := s.controller.AdvancePairing(s.ctx, identity.New(t.ID))
	s.ErrorIs(err, ErrMissingProof)
}

func (s *ControllerSuite) TestAdvancePairingSkipsInactivePlayers() {
	t := s.createTournament(1)
	alice := s.signUp(t, "Alice", 1200)
	bob := s.signUp(t, "Bob", 800)
	carol := s.signUp(t, "Carol", 1600)
	_, err := s.controller.UpdatePlayer(s.ctx, s.signed(carol.ID), identity.Identity{}, PlayerUpdate{Withdrawn: ptr(true)})
	s.Require().NoError(err)

	games, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(alice.ID, games[0].White.ID)
	s.Equal(bob.ID, games[0].Black.ID)
}

// Game tests

func (s *ControllerSuite) pairedGames() (*Tournament, []*Game) {
	t := s.createTournament(2)
	s.signUp(t, "Alice", 1200)
	s.signUp(t, "Bob", 800)
	s.signUp(t, "Carol", 1600)
	games, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	return t, games
}

func (s *ControllerSuite) TestRegisterResultWithGameProof() {
	_, games := s.pairedGames()

	g, err := s.controller.RegisterResult(s.ctx, s.signed(games[0].ID), identity.Identity{}, wire.ResultDraw)
	s.Require().NoError(err)
	s.Equal(wire.ResultDraw, g.Result)
	s.True(g.Signed)

	fetched, err := s.controller.GetGame(s.ctx, identity.New(g.ID))
	s.Require().NoError(err)
	s.Equal(wire.ResultDraw, fetched.Result)
	s.False(fetched.Signed)
}

func (s *ControllerSuite) TestRegisterResultWithTournamentProof() {
	t, games := s.pairedGames()

	g, err := s.controller.RegisterResult(s.ctx, identity.New(games[0].ID), s.signed(t.ID), wire.ResultWhiteWin)
	s.Require().NoError(err)
	s.Equal(wire.ResultWhiteWin, g.Result)
	s.False(g.Signed)
}

func (s *ControllerSuite) TestRegisterResultRejections() {
	t, games := s.pairedGames()

	_, err := s.controller.RegisterResult(s.ctx, identity.New(games[0].ID), identity.Identity{}, wire.ResultDraw)
	s.ErrorIs(err, ErrMissingProof)

	_, err = s.controller.RegisterResult(s.ctx, s.forged(games[0].ID), identity.Identity{}, wire.ResultDraw)
	s.ErrorIs(err, ErrWrongProof)

	_, err = s.controller.RegisterResult(s.ctx, s.signed(games[1].ID), identity.Identity{}, wire.ResultDraw)
	s.ErrorIs(err, ErrByeResult)

	_, err = s.controller.RegisterResult(s.ctx, identity.New(games[0].ID), s.signed(t.ID), wire.GameResult(99))
	s.ErrorIs(err, ErrIncomplete)
}

func (s *ControllerSuite) TestGamesDelegateTournamentProof() {
	t, _ := s.pairedGames()

	games, err := s.controller.Games(s.ctx, identity.New(t.ID))
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.False(games[0].Signed)

	games, err = s.controller.Games(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	s.True(games[0].Signed)
}

func (s *ControllerSuite) TestPlayerGamesAreNeverSigned() {
	_, games := s.pairedGames()
	white := games[0].White

	own, err := s.controller.PlayerGames(s.ctx, s.signed(white.ID))
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(games[0].ID, own[0].ID)
	s.False(own[0].Signed)
}

func (s *ControllerSuite) TestSecondRoundAvoidsRematchAndRepeatBye() {
	t, first := s.pairedGames()
	byePlayer := first[1].White.ID

	_, err := s.controller.RegisterResult(s.ctx, s.signed(first[0].ID), identity.Identity{}, wire.ResultWhiteWin)
	s.Require().NoError(err)

	second, err := s.controller.AdvancePairing(s.ctx, s.signed(t.ID))
	s.Require().NoError(err)
	s.Require().Len(second, 2)
	s.Equal(uint32(2), second[0].Round)
	s.True(second[1].IsBye())
	s.NotEqual(byePlayer, second[1].White.ID)
	s.True(second[0].Involves(byePlayer))
}

func (s *ControllerSuite) TestIdentity() {
	id := uuid.New()

	s.False(s.controller.Identity(id, false).HasProof())
	s.True(s.signer.Verify(s.controller.Identity(id, true)))
}
