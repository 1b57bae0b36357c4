// Package handler implements the JSON API endpoints on top of a pairing
// service connection.
package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/model"
)

// Backend is the part of the pairing service the API uses.
// *connection.Connection implements it.
type Backend interface {
	Ping(ctx context.Context) error

	CreateTournament(ctx context.Context, name string, rounds uint32) (*model.Tournament, error)
	Tournament(ctx context.Context, id identity.Identity) (*model.Tournament, error)
	UpdateTournament(ctx context.Context, t *model.Tournament) (*model.Tournament, error)
	TournamentGames(ctx context.Context, id identity.Identity) ([]*model.Game, error)
	TournamentPlayers(ctx context.Context, id identity.Identity) ([]*model.Player, error)
	AdvancePairing(ctx context.Context, id identity.Identity) ([]*model.Game, error)

	CreatePlayer(ctx context.Context, name string, rating uint32, t *model.Tournament) (*model.Player, error)
	Player(ctx context.Context, id identity.Identity) (*model.Player, error)
	UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	PlayerGames(ctx context.Context, id identity.Identity) ([]*model.Game, error)

	Game(ctx context.Context, id identity.Identity) (*model.Game, error)
	RegisterResult(ctx context.Context, g *model.Game) (*model.Game, error)
}

// identityFromRoute reads the {uuid} and optional {hmac} route variables
func identityFromRoute(r *http.Request) (identity.Identity, error) {
	vars := mux.Vars(r)
	return identity.Parse(vars["uuid"], vars["hmac"])
}
