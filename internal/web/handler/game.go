package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pairings-web/internal/web/middleware"
	"github.com/mcoot/pairings-web/internal/web/templates/layout"
	"github.com/mcoot/pairings-web/internal/web/templates/pages"
	"github.com/mcoot/pairings-web/internal/wire"
)

// GameHandler handles game pages and result entry
type GameHandler struct {
	backend Backend
	logger  *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(backend Backend, logger *slog.Logger) *GameHandler {
	return &GameHandler{backend: backend, logger: logger}
}

// View renders a game
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	g, err := h.backend.Game(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title: g.Description(),
			Flash: middleware.GetFlash(r.Context()),
		},
		Game: pages.NewGameView(g),
	}
	if t := g.Tournament(); t != nil {
		data.Tournament = pages.NewTournamentView(t)
	}
	if g.Signed() && g.HasBlack() {
		current := wire.ResultNone
		if g.HasResult() {
			current = g.Result()
		}
		data.Options = pages.ResultOptions(current)
		data.Action = g.Link() + "result"
	}
	render(w, r, http.StatusOK, pages.Game(data))
}

// Result records the result submitted by the result form
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	back := "/game/" + id.LinkFragment() + "/"

	if err := r.ParseForm(); err != nil {
		reject(w, r, back, "Invalid form data")
		return
	}
	result, ok := wire.ParseResult(r.FormValue("result"))
	if !ok || result == wire.ResultNone {
		reject(w, r, back, "Choose a result")
		return
	}

	g, err := h.backend.Game(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	g.SetResult(result)
	if _, err := h.backend.RegisterResult(r.Context(), g); err != nil {
		formError(w, r, h.logger, back, err)
		return
	}

	succeed(w, r, back, "Result recorded: "+pages.ResultLabel(result))
}
