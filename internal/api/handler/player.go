package handler

import (
	"net/http"

	"github.com/mcoot/pairings-web/internal/api/apierr"
	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
	"github.com/mcoot/pairings-web/internal/identity"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	backend Backend
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(backend Backend) *PlayerHandler {
	return &PlayerHandler{backend: backend}
}

// Get handles GET /api/v1/players/{uuid}[/{hmac}]
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.backend.Player(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Games handles GET /api/v1/players/{uuid}[/{hmac}]/games
func (h *PlayerHandler) Games(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.backend.PlayerGames(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Withdraw handles POST /api/v1/players/{uuid}/{hmac}/withdraw
func (h *PlayerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.backend.Player(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	p.SetWithdrawn(true)

	p, err = h.backend.UpdatePlayer(r.Context(), p)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Expel handles POST /api/v1/players/{uuid}/expel. The organizer's
// tournament reference in the body authorizes it.
func (h *PlayerHandler) Expel(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req request.ExpelRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	tid, err := identity.ParseFragment(req.Tournament)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.backend.Player(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	t := p.Tournament()
	if t == nil {
		WriteError(w, apierr.NewInternalError())
		return
	}
	ref := t.Reference()
	ref.SetID(tid)
	p.SetTournament(ref)
	p.SetExpelled(true)

	p, err = h.backend.UpdatePlayer(r.Context(), p)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
