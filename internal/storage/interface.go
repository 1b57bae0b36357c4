package storage

import (
	"context"

	"github.com/google/uuid"
)

// Storage defines the interface for pairing backend persistence. Save
// operations insert or replace; list operations return records in the order
// they were first saved.
type Storage interface {
	// Tournament operations
	SaveTournament(ctx context.Context, t *Tournament) error
	GetTournament(ctx context.Context, id uuid.UUID) (*Tournament, error)

	// Player operations
	SavePlayer(ctx context.Context, p *Player) error
	GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error)
	GetPlayersForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*Player, error)

	// Game operations
	SaveGame(ctx context.Context, g *Game) error
	GetGame(ctx context.Context, id uuid.UUID) (*Game, error)
	GetGamesForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*Game, error)
	GetGamesForPlayer(ctx context.Context, playerID uuid.UUID) ([]*Game, error)

	Close() error
}
