package pages

import (
	"github.com/mcoot/pairings-web/internal/model"
	"github.com/mcoot/pairings-web/internal/wire"
)

// TournamentView is what the pages show of a tournament.
type TournamentView struct {
	Name   string
	Rounds uint32
	Link   string // public link, without the proof
	Admin  string // signed link, empty unless the viewer holds the proof
	Base   string // "/tournament/<uuid>/", for sign-ups
}

// PlayerView is what the pages show of a player.
type PlayerView struct {
	Name        string
	Rating      uint32
	Description string
	Link        string
	Status      string
}

// GameView is what the pages show of a game.
type GameView struct {
	Round       uint32
	Description string
	Link        string
	White       PlayerView
	Black       *PlayerView
	Result      string
}

// RoundView is the games of one round.
type RoundView struct {
	Round uint32
	Games []GameView
}

// ResultOption is one choice of the result form.
type ResultOption struct {
	Value    string
	Label    string
	Selected bool
}

var resultLabels = map[wire.GameResult]string{
	wire.ResultNone:         "Not played yet",
	wire.ResultDraw:         "½-½",
	wire.ResultWhiteWin:     "1-0",
	wire.ResultBlackWin:     "0-1",
	wire.ResultWhiteForfeit: "0-1 (white forfeits)",
	wire.ResultBlackForfeit: "1-0 (black forfeits)",
}

// ResultLabel renders a result the way a score sheet does.
func ResultLabel(r wire.GameResult) string {
	if label, ok := resultLabels[r]; ok {
		return label
	}
	return r.String()
}

// ResultOptions lists the results a game can be given, with current selected.
func ResultOptions(current wire.GameResult) []ResultOption {
	var opts []ResultOption
	for _, r := range wire.Results() {
		if r == wire.ResultNone {
			continue
		}
		opts = append(opts, ResultOption{Value: r.String(), Label: ResultLabel(r), Selected: r == current})
	}
	return opts
}

// NewTournamentView builds the view of t.
func NewTournamentView(t *model.Tournament) TournamentView {
	v := TournamentView{Name: t.Name(), Rounds: t.Rounds()}
	id, ok := t.Identity()
	if !ok {
		return v
	}
	v.Base = "/tournament/" + id.Anonymous().LinkFragment() + "/"
	v.Link = v.Base
	if id.HasProof() {
		v.Admin = t.Link()
	}
	return v
}

// NewPlayerView builds the view of p.
func NewPlayerView(p *model.Player) PlayerView {
	v := PlayerView{
		Name:        p.Name(),
		Rating:      p.Rating(),
		Description: p.Description(),
		Link:        p.Link(),
		Status:      "active",
	}
	switch {
	case p.Expelled():
		v.Status = "expelled"
	case p.Withdrawn():
		v.Status = "withdrawn"
	}
	return v
}

// NewGameView builds the view of g.
func NewGameView(g *model.Game) GameView {
	v := GameView{
		Round:       g.Round(),
		Description: g.Description(),
		Link:        g.Link(),
		Result:      ResultLabel(wire.ResultNone),
	}
	if white := g.White(); white != nil {
		v.White = NewPlayerView(white)
	}
	if black := g.Black(); black != nil {
		bv := NewPlayerView(black)
		v.Black = &bv
	}
	switch {
	case v.Black == nil:
		v.Result = "Bye"
	case g.HasResult():
		v.Result = ResultLabel(g.Result())
	}
	return v
}

// NewRoundViews builds one view per round group.
func NewRoundViews(groups []model.RoundGroup) []RoundView {
	rounds := make([]RoundView, 0, len(groups))
	for _, group := range groups {
		rv := RoundView{Round: group.Round}
		for _, g := range group.Games {
			rv.Games = append(rv.Games, NewGameView(g))
		}
		rounds = append(rounds, rv)
	}
	return rounds
}
