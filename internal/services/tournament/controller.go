// Package tournament implements the pairing backend: tournaments, sign-ups,
// round pairing and results, guarded by proofs of authorship.
//
// Reads are public, but a presented proof must verify and is only echoed
// back when it does. Writes need the proof of the entity written, or of the
// tournament it belongs to. A caller holding a tournament's proof receives
// signed identities for its players and games.
package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/pairings-web/internal/dependencies/clock"
	"github.com/mcoot/pairings-web/internal/dependencies/random"
	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/services/pairing"
	"github.com/mcoot/pairings-web/internal/services/signing"
	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Controller manages tournaments, their players and games
type Controller struct {
	storage storage.Storage
	signer  *signing.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	// serialises read-modify-write of stored records, so a round is never
	// paired twice and concurrent updates are not lost
	writeMu sync.Mutex
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	signer *signing.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		signer:  signer,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Identity returns the identity of id, carrying its proof when signed.
func (c *Controller) Identity(id uuid.UUID, signed bool) identity.Identity {
	if signed {
		return c.signer.Sign(id)
	}
	return identity.New(id)
}

// verify checks a presented proof. An identity without one is not signed.
func (c *Controller) verify(id identity.Identity) (bool, error) {
	if !id.HasProof() {
		return false, nil
	}
	if !c.signer.Verify(id) {
		return false, ErrWrongProof
	}
	return true, nil
}

// authorize succeeds when any of ids carries a valid proof.
func (c *Controller) authorize(ids ...identity.Identity) error {
	presented := false
	for _, id := range ids {
		if !id.HasProof() {
			continue
		}
		presented = true
		if c.signer.Verify(id) {
			return nil
		}
	}
	if presented {
		return ErrWrongProof
	}
	return ErrMissingProof
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrIncomplete)
	}
	return name, nil
}

// Tournament operations

// CreateTournament creates a tournament of the given number of rounds.
func (c *Controller) CreateTournament(ctx context.Context, name string, rounds uint32) (*Tournament, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if rounds == 0 {
		return nil, fmt.Errorf("%w: a tournament needs at least one round", ErrIncomplete)
	}

	t := &storage.Tournament{
		ID:        c.random.UUID(),
		Name:      name,
		Rounds:    rounds,
		CreatedAt: c.clock.Now(),
	}
	if err := c.storage.SaveTournament(ctx, t); err != nil {
		c.logger.Error("failed to save tournament",
			"tournament_id", t.ID,
			"error", err,
		)
		return nil, err
	}

	c.logger.Info("tournament created",
		"tournament_id", t.ID,
		"rounds", rounds,
	)
	return &Tournament{Tournament: t, Signed: true}, nil
}

func (c *Controller) GetTournament(ctx context.Context, id identity.Identity) (*Tournament, error) {
	signed, err := c.verify(id)
	if err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, id.UUID())
	if err != nil {
		return nil, err
	}
	return &Tournament{Tournament: t, Signed: signed}, nil
}

// UpdateTournament renames a tournament or changes its number of rounds.
// Rounds cannot drop below the rounds already paired.
func (c *Controller) UpdateTournament(ctx context.Context, id identity.Identity, update TournamentUpdate) (*Tournament, error) {
	if err := c.authorize(id); err != nil {
		return nil, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	t, err := c.storage.GetTournament(ctx, id.UUID())
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if t.Name, err = requireName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Rounds != nil {
		if *update.Rounds == 0 || *update.Rounds < t.PairedRounds {
			return nil, fmt.Errorf("%w: rounds must be at least %d", ErrIncomplete, max(1, t.PairedRounds))
		}
		t.Rounds = *update.Rounds
	}

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	return &Tournament{Tournament: t, Signed: true}, nil
}

// Games returns the tournament's games in pairing order.
func (c *Controller) Games(ctx context.Context, tournamentID identity.Identity) ([]*Game, error) {
	signed, err := c.verify(tournamentID)
	if err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, tournamentID.UUID())
	if err != nil {
		return nil, err
	}
	games, err := c.storage.GetGamesForTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	r := c.newResolver(t)
	return r.games(ctx, games, signed)
}

// AdvancePairing pairs the tournament's next round and returns its games.
func (c *Controller) AdvancePairing(ctx context.Context, tournamentID identity.Identity) ([]*Game, error) {
	if err := c.authorize(tournamentID); err != nil {
		return nil, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	t, err := c.storage.GetTournament(ctx, tournamentID.UUID())
	if err != nil {
		return nil, err
	}
	if t.PairedRounds >= t.Rounds {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoMoreRounds, t.PairedRounds, t.Rounds)
	}

	players, err := c.storage.GetPlayersForTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	history, err := c.storage.GetGamesForTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	pairings, err := pairing.Pair(players, history)
	if err != nil {
		return nil, err
	}

	round := t.PairedRounds + 1
	now := c.clock.Now()
	games := make([]*storage.Game, 0, len(pairings))
	for _, p := range pairings {
		g := &storage.Game{
			ID:           c.random.UUID(),
			TournamentID: t.ID,
			Round:        round,
			White:        p.White,
			Black:        p.Black,
			CreatedAt:    now,
		}
		if err := c.storage.SaveGame(ctx, g); err != nil {
			c.logger.Error("failed to save game",
				"tournament_id", t.ID,
				"round", round,
				"error", err,
			)
			return nil, err
		}
		games = append(games, g)
	}

	t.PairedRounds = round
	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.logger.Info("round paired",
		"tournament_id", t.ID,
		"round", round,
		"games", len(games),
	)

	r := c.newResolver(t)
	r.addPlayers(players)
	return r.games(ctx, games, true)
}

// Player operations

// SignUp adds a player to a tournament. No proof is needed.
func (c *Controller) SignUp(ctx context.Context, tournamentID identity.Identity, name string, rating uint32) (*Player, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if _, err := c.verify(tournamentID); err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, tournamentID.UUID())
	if err != nil {
		return nil, err
	}

	p := &storage.Player{
		ID:           c.random.UUID(),
		TournamentID: t.ID,
		Name:         name,
		Rating:       rating,
		CreatedAt:    c.clock.Now(),
	}
	if err := c.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}

	c.logger.Info("player signed up",
		"tournament_id", t.ID,
		"player_id", p.ID,
	)
	return &Player{Player: p, Tournament: t, Signed: true}, nil
}

func (c *Controller) GetPlayer(ctx context.Context, id identity.Identity) (*Player, error) {
	signed, err := c.verify(id)
	if err != nil {
		return nil, err
	}
	p, err := c.storage.GetPlayer(ctx, id.UUID())
	if err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, p.TournamentID)
	if err != nil {
		return nil, err
	}
	return &Player{Player: p, Tournament: t, Signed: signed}, nil
}

// UpdatePlayer changes a player's details. The player's or the tournament's
// proof is needed; changing the expelled flag needs the tournament's.
func (c *Controller) UpdatePlayer(ctx context.Context, id, tournamentID identity.Identity, update PlayerUpdate) (*Player, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	p, err := c.storage.GetPlayer(ctx, id.UUID())
	if err != nil {
		return nil, err
	}
	if tournamentID.HasProof() && tournamentID.UUID() != p.TournamentID {
		return nil, ErrWrongProof
	}
	if update.Expelled != nil && *update.Expelled != p.Expelled {
		err = c.authorize(tournamentID)
	} else {
		err = c.authorize(id, tournamentID)
	}
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if p.Name, err = requireName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Rating != nil {
		p.Rating = *update.Rating
	}
	if update.Withdrawn != nil {
		p.Withdrawn = *update.Withdrawn
	}
	if update.Expelled != nil {
		p.Expelled = *update.Expelled
	}

	if err := c.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, p.TournamentID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("player updated",
		"player_id", p.ID,
		"withdrawn", p.Withdrawn,
		"expelled", p.Expelled,
	)
	return &Player{Player: p, Tournament: t, Signed: c.signer.Verify(id)}, nil
}

// Players returns the tournament's players in sign-up order.
func (c *Controller) Players(ctx context.Context, tournamentID identity.Identity) ([]*Player, error) {
	signed, err := c.verify(tournamentID)
	if err != nil {
		return nil, err
	}
	t, err := c.storage.GetTournament(ctx, tournamentID.UUID())
	if err != nil {
		return nil, err
	}
	players, err := c.storage.GetPlayersForTournament(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, &Player{Player: p, Tournament: t, Signed: signed})
	}
	return out, nil
}

// PlayerGames returns the games a player plays in, in pairing order.
func (c *Controller) PlayerGames(ctx context.Context, playerID identity.Identity) ([]*Game, error) {
	if _, err := c.verify(playerID); err != nil {
		return nil, err
	}
	p, err := c.storage.GetPlayer(ctx, playerID.UUID())
	if err != nil {
		return nil, err
	}
	games, err := c.storage.GetGamesForPlayer(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	r := c.newResolver(nil)
	r.addPlayers([]*storage.Player{p})
	return r.games(ctx, games, false)
}

// Game operations

func (c *Controller) GetGame(ctx context.Context, id identity.Identity) (*Game, error) {
	signed, err := c.verify(id)
	if err != nil {
		return nil, err
	}
	g, err := c.storage.GetGame(ctx, id.UUID())
	if err != nil {
		return nil, err
	}
	return c.newResolver(nil).game(ctx, g, signed)
}

// RegisterResult records a game's result. The game's or the tournament's
// proof is needed.
func (c *Controller) RegisterResult(ctx context.Context, gameID, tournamentID identity.Identity, result wire.GameResult) (*Game, error) {
	if !result.Valid() {
		return nil, fmt.Errorf("%w: unknown result %d", ErrIncomplete, int32(result))
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	g, err := c.storage.GetGame(ctx, gameID.UUID())
	if err != nil {
		return nil, err
	}
	if tournamentID.HasProof() && tournamentID.UUID() != g.TournamentID {
		return nil, ErrWrongProof
	}
	if err := c.authorize(gameID, tournamentID); err != nil {
		return nil, err
	}
	if g.IsBye() {
		return nil, ErrByeResult
	}

	g.Result = result
	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}

	c.logger.Info("result registered",
		"game_id", g.ID,
		"result", result.String(),
	)
	return c.newResolver(nil).game(ctx, g, c.signer.Verify(gameID))
}

// resolver loads the tournament and players of games, once each per call.
type resolver struct {
	storage     storage.Storage
	tournaments map[uuid.UUID]*storage.Tournament
	players     map[uuid.UUID]*storage.Player
}

func (c *Controller) newResolver(t *storage.Tournament) *resolver {
	r := &resolver{
		storage:     c.storage,
		tournaments: make(map[uuid.UUID]*storage.Tournament),
		players:     make(map[uuid.UUID]*storage.Player),
	}
	if t != nil {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *resolver) addPlayers(players []*storage.Player) {
	for _, p := range players {
		r.players[p.ID] = p
	}
}

func (r *resolver) tournament(ctx context.Context, id uuid.UUID) (*storage.Tournament, error) {
	if t, ok := r.tournaments[id]; ok {
		return t, nil
	}
	t, err := r.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	r.tournaments[id] = t
	return t, nil
}

func (r *resolver) player(ctx context.Context, id uuid.UUID) (*storage.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	p, err := r.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	r.players[id] = p
	return p, nil
}

func (r *resolver) game(ctx context.Context, g *storage.Game, signed bool) (*Game, error) {
	t, err := r.tournament(ctx, g.TournamentID)
	if err != nil {
		return nil, err
	}
	white, err := r.player(ctx, g.White)
	if err != nil {
		return nil, err
	}
	out := &Game{Game: g, Tournament: t, White: white, Signed: signed}
	if g.Black.Valid {
		if out.Black, err = r.player(ctx, g.Black.UUID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *resolver) games(ctx context.Context, games []*storage.Game, signed bool) ([]*Game, error) {
	out := make([]*Game, 0, len(games))
	for _, g := range games {
		resolved, err := r.game(ctx, g, signed)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
