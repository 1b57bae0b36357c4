// Package pages holds the HTML pages of the web interface.
package pages

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/mcoot/pairings-web/internal/web/templates/layout"
)

//go:embed html/*.html
var files embed.FS

var templates = template.Must(template.New("pages").ParseFS(files, "html/*.html"))

// HomeData is the data for the home page.
type HomeData struct {
	layout.PageData
}

// TournamentData is the data for the tournament page.
type TournamentData struct {
	layout.PageData
	Tournament TournamentView
	Players    []PlayerView
	Rounds     []RoundView
	CanPair    bool
}

// PlayerData is the data for the player page.
type PlayerData struct {
	layout.PageData
	Player      PlayerView
	Tournament  TournamentView
	Games       []GameView
	CanWithdraw bool
	Action      string
}

// GameData is the data for the game page.
type GameData struct {
	layout.PageData
	Game       GameView
	Tournament TournamentView
	Options    []ResultOption
	Action     string // result form target, empty when the viewer may not record one
}

// ErrorData is the data for the error page.
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

func page(data layout.PageData, name string, body any) templ.Component {
	return layout.Page(data, templ.FromGoHTML(templates.Lookup(name), body))
}

// Home renders the home page.
func Home(data HomeData) templ.Component {
	return page(data.PageData, "home.html", data)
}

// Tournament renders a tournament with its players and games.
func Tournament(data TournamentData) templ.Component {
	return page(data.PageData, "tournament.html", data)
}

// Player renders a player with their games.
func Player(data PlayerData) templ.Component {
	return page(data.PageData, "player.html", data)
}

// Game renders a game.
func Game(data GameData) templ.Component {
	return page(data.PageData, "game.html", data)
}

// Error renders an error page.
func Error(data ErrorData) templ.Component {
	return page(data.PageData, "error.html", data)
}
