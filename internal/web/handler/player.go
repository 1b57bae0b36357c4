package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pairings-web/internal/web/middleware"
	"github.com/mcoot/pairings-web/internal/web/templates/layout"
	"github.com/mcoot/pairings-web/internal/web/templates/pages"
)

// PlayerHandler handles player pages and actions
type PlayerHandler struct {
	backend Backend
	logger  *slog.Logger
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(backend Backend, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{backend: backend, logger: logger}
}

// View renders a player with their games
func (h *PlayerHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	p, err := h.backend.Player(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	games, err := p.Games(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	data := pages.PlayerData{
		PageData: layout.PageData{
			Title: p.Name(),
			Flash: middleware.GetFlash(r.Context()),
		},
		Player:      pages.NewPlayerView(p),
		CanWithdraw: p.Signed() && p.Active(),
		Action:      p.Link() + "withdraw",
	}
	if t := p.Tournament(); t != nil {
		data.Tournament = pages.NewTournamentView(t)
	}
	for _, g := range games {
		data.Games = append(data.Games, pages.NewGameView(g))
	}
	render(w, r, http.StatusOK, pages.Player(data))
}

// Withdraw withdraws the player from their tournament
func (h *PlayerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	back := "/player/" + id.LinkFragment() + "/"

	p, err := h.backend.Player(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	p.SetWithdrawn(true)
	if _, err := h.backend.UpdatePlayer(r.Context(), p); err != nil {
		formError(w, r, h.logger, back, err)
		return
	}

	succeed(w, r, back, "You have withdrawn. You will not be paired in later rounds.")
}
