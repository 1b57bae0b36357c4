package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/pairings-web/internal/wire"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
)

// Tournament is the backend record of a tournament.
type Tournament struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Rounds       uint32    `json:"rounds"`
	PairedRounds uint32    `json:"paired_rounds"`
	CreatedAt    time.Time `json:"created_at"`
}

// Player is the backend record of a tournament entrant.
type Player struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Name         string    `json:"name"`
	Rating       uint32    `json:"rating"`
	Withdrawn    bool      `json:"withdrawn"`
	Expelled     bool      `json:"expelled"`
	CreatedAt    time.Time `json:"created_at"`
}

// Active reports whether the player takes part in future rounds.
func (p *Player) Active() bool {
	return !p.Withdrawn && !p.Expelled
}

// Game is the backend record of one pairing. A game without a black player
// is a bye.
type Game struct {
	ID           uuid.UUID       `json:"id"`
	TournamentID uuid.UUID       `json:"tournament_id"`
	Round        uint32          `json:"round"`
	White        uuid.UUID       `json:"white"`
	Black        uuid.NullUUID   `json:"black"`
	Result       wire.GameResult `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsBye reports whether the game has no black player.
func (g *Game) IsBye() bool {
	return !g.Black.Valid
}

// Involves reports whether the player plays in the game.
func (g *Game) Involves(playerID uuid.UUID) bool {
	return g.White == playerID || (g.Black.Valid && g.Black.UUID == playerID)
}
