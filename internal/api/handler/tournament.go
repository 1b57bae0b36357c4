package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
)

// TournamentHandler handles tournament endpoints
type TournamentHandler struct {
	backend Backend
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(backend Backend) *TournamentHandler {
	return &TournamentHandler{backend: backend}
}

// Create handles POST /api/v1/tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTournamentRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Rounds == 0 {
		WriteError(w, NewInvalidRequestError("rounds must be at least 1"))
		return
	}

	t, err := h.backend.CreateTournament(r.Context(), req.Name, req.Rounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	// the create reply carries only the id; fetch the stored record
	id, _ := t.Identity()
	t, err = h.backend.Tournament(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TournamentFromModel(t))
}

// Get handles GET /api/v1/tournaments/{uuid}[/{hmac}]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.backend.Tournament(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Update handles PATCH /api/v1/tournaments/{uuid}/{hmac}
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req request.UpdateTournamentRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.backend.Tournament(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if req.Name != nil {
		t.SetName(*req.Name)
	}
	if req.Rounds != nil {
		t.SetRounds(*req.Rounds)
	}

	t, err = h.backend.UpdateTournament(r.Context(), t)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Players handles GET /api/v1/tournaments/{uuid}[/{hmac}]/players
func (h *TournamentHandler) Players(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.backend.TournamentPlayers(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Games handles GET /api/v1/tournaments/{uuid}[/{hmac}]/games
func (h *TournamentHandler) Games(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.backend.TournamentGames(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Pair handles POST /api/v1/tournaments/{uuid}/{hmac}/pair
func (h *TournamentHandler) Pair(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.backend.AdvancePairing(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GamesFromModel(games))
}

// SignUp handles POST /api/v1/tournaments/{uuid}/players
func (h *TournamentHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req request.SignUpRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	t, err := h.backend.Tournament(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	p, err := h.backend.CreatePlayer(r.Context(), req.Name, req.Rating, t)
	if err != nil {
		WriteError(w, err)
		return
	}

	pid, _ := p.Identity()
	p, err = h.backend.Player(r.Context(), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}
