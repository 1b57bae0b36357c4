package response

import (
	"github.com/mcoot/pairings-web/internal/model"
	"github.com/mcoot/pairings-web/internal/wire"
)

// EntityRef identifies an entity in API responses. Ref is "<uuid>" or, when the
// caller holds the entity's proof, "<uuid>/<proof>".
type EntityRef struct {
	ID     string `json:"id"`
	Ref    string `json:"ref"`
	Signed bool   `json:"signed"`
	Link   string `json:"link"`
}

func refOf(id *model.Identification, link string) EntityRef {
	if id == nil {
		return EntityRef{}
	}
	ident := id.Identity()
	return EntityRef{
		ID:     ident.Anonymous().LinkFragment(),
		Ref:    ident.LinkFragment(),
		Signed: ident.HasProof(),
		Link:   link,
	}
}

// Tournament represents a tournament in API responses
type Tournament struct {
	EntityRef
	Name   string `json:"name"`
	Rounds uint32 `json:"rounds"`
}

// TournamentFromModel converts a model.Tournament
func TournamentFromModel(t *model.Tournament) Tournament {
	return Tournament{
		EntityRef: refOf(t.ID(), t.Link()),
		Name:      t.Name(),
		Rounds:    t.Rounds(),
	}
}

// Player represents a player in API responses
type Player struct {
	EntityRef
	Name        string      `json:"name"`
	Rating      uint32      `json:"rating"`
	Description string      `json:"description"`
	Withdrawn   bool        `json:"withdrawn"`
	Expelled    bool        `json:"expelled"`
	Active      bool        `json:"active"`
	Tournament  *Tournament `json:"tournament,omitempty"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p *model.Player) Player {
	out := Player{
		EntityRef:   refOf(p.ID(), p.Link()),
		Name:        p.Name(),
		Rating:      p.Rating(),
		Description: p.Description(),
		Withdrawn:   p.Withdrawn(),
		Expelled:    p.Expelled(),
		Active:      p.Active(),
	}
	if t := p.Tournament(); t != nil {
		tr := TournamentFromModel(t)
		out.Tournament = &tr
	}
	return out
}

// PlayerSummary is a player nested in a game
type PlayerSummary struct {
	EntityRef
	Name   string `json:"name"`
	Rating uint32 `json:"rating"`
}

func playerSummary(p *model.Player) *PlayerSummary {
	if p == nil {
		return nil
	}
	return &PlayerSummary{EntityRef: refOf(p.ID(), p.Link()), Name: p.Name(), Rating: p.Rating()}
}

// Game represents a game in API responses. A game without black is a bye.
type Game struct {
	EntityRef
	Round       uint32         `json:"round"`
	Description string         `json:"description"`
	White       *PlayerSummary `json:"white"`
	Black       *PlayerSummary `json:"black"`
	Result      string         `json:"result,omitempty"`
	Bye         bool           `json:"bye"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	out := Game{
		EntityRef:   refOf(g.ID(), g.Link()),
		Round:       g.Round(),
		Description: g.Description(),
		White:       playerSummary(g.White()),
		Black:       playerSummary(g.Black()),
		Bye:         !g.HasBlack(),
	}
	if g.HasResult() && g.Result() != wire.ResultNone {
		out.Result = g.Result().String()
	}
	return out
}

// Round is the games of one round
type Round struct {
	Round uint32 `json:"round"`
	Games []Game `json:"games"`
}

// GamesResponse lists games grouped by ascending round
type GamesResponse struct {
	Rounds []Round `json:"rounds"`
}

// GamesFromModel groups games with model.GroupByRound
func GamesFromModel(games []*model.Game) GamesResponse {
	out := GamesResponse{Rounds: []Round{}}
	for _, group := range model.GroupByRound(games) {
		round := Round{Round: group.Round}
		for _, g := range group.Games {
			round.Games = append(round.Games, GameFromModel(g))
		}
		out.Rounds = append(out.Rounds, round)
	}
	return out
}

// PlayersResponse lists players in sign-up order
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// PlayersFromModel converts a list of players
func PlayersFromModel(players []*model.Player) PlayersResponse {
	out := PlayersResponse{Players: make([]Player, 0, len(players))}
	for _, p := range players {
		out.Players = append(out.Players, PlayerFromModel(p))
	}
	return out
}

// Health is the response of the health endpoint
type Health struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
