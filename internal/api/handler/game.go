package handler

import (
	"net/http"

	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
	"github.com/mcoot/pairings-web/internal/wire"
)

// GameHandler handles game endpoints
type GameHandler struct {
	backend Backend
}

// NewGameHandler creates a new game handler
func NewGameHandler(backend Backend) *GameHandler {
	return &GameHandler{backend: backend}
}

// Get handles GET /api/v1/games/{uuid}[/{hmac}]
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.backend.Game(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Result handles POST /api/v1/games/{uuid}/{hmac}/result
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRoute(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req request.ResultRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	result, ok := wire.ParseResult(req.Result)
	if !ok || result == wire.ResultNone {
		WriteError(w, NewInvalidRequestError("result must be one of DRAW, WHITE_WIN, BLACK_WIN, WHITE_FORFEIT, BLACK_FORFEIT"))
		return
	}

	g, err := h.backend.Game(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	g.SetResult(result)

	g, err = h.backend.RegisterResult(r.Context(), g)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}
