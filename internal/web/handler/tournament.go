package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/pairings-web/internal/web/middleware"
	"github.com/mcoot/pairings-web/internal/web/templates/layout"
	"github.com/mcoot/pairings-web/internal/web/templates/pages"
)

// TournamentHandler handles tournament pages and actions
type TournamentHandler struct {
	backend Backend
	logger  *slog.Logger
}

// NewTournamentHandler creates a new TournamentHandler
func NewTournamentHandler(backend Backend, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{backend: backend, logger: logger}
}

// Create handles the new tournament form and redirects to its signed page
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		reject(w, r, "/", "Invalid form data")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		reject(w, r, "/", "Tournament name is required")
		return
	}
	rounds, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("rounds")), 10, 32)
	if err != nil || rounds == 0 {
		reject(w, r, "/", "Rounds must be a positive number")
		return
	}

	t, err := h.backend.CreateTournament(r.Context(), name, uint32(rounds))
	if err != nil {
		formError(w, r, h.logger, "/", err)
		return
	}

	succeed(w, r, t.Link(), "Tournament created. Bookmark this page: its link is the only way to manage the tournament.")
}

// View renders a tournament with its players and its games grouped by round
func (h *TournamentHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	t, err := h.backend.Tournament(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	players, err := t.Players(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	groups, err := t.GamesByRound(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	data := pages.TournamentData{
		PageData: layout.PageData{
			Title: t.Name(),
			Flash: middleware.GetFlash(r.Context()),
		},
		Tournament: pages.NewTournamentView(t),
		Rounds:     pages.NewRoundViews(groups),
		CanPair:    t.Signed(),
	}
	for _, p := range players {
		data.Players = append(data.Players, pages.NewPlayerView(p))
	}
	render(w, r, http.StatusOK, pages.Tournament(data))
}

// SignUp handles the sign-up form and redirects to the new player's signed page
func (h *TournamentHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	back := "/tournament/" + id.LinkFragment() + "/"

	if err := r.ParseForm(); err != nil {
		reject(w, r, back, "Invalid form data")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		reject(w, r, back, "Player name is required")
		return
	}
	rating, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("rating")), 10, 32)
	if err != nil {
		reject(w, r, back, "Rating must be a number")
		return
	}

	t, err := h.backend.Tournament(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	p, err := h.backend.CreatePlayer(r.Context(), name, uint32(rating), t)
	if err != nil {
		formError(w, r, h.logger, back, err)
		return
	}

	succeed(w, r, p.Link(), "Signed up. Bookmark this page: its link is the only way to withdraw.")
}

// Pair pairs the next round and returns to the tournament's signed page
func (h *TournamentHandler) Pair(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	back := "/tournament/" + id.LinkFragment() + "/"

	games, err := h.backend.AdvancePairing(r.Context(), id)
	if err != nil {
		formError(w, r, h.logger, back, err)
		return
	}

	message := "Round paired."
	if len(games) > 0 {
		message = fmt.Sprintf("Round %d paired: %d games.", games[0].Round(), len(games))
	}
	succeed(w, r, back, message)
}
