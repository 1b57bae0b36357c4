// Package handler implements the HTML pages of the web interface on top of
// a pairing service connection.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/pairings-web/internal/connection"
	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/model"
	"github.com/mcoot/pairings-web/internal/web/middleware"
	"github.com/mcoot/pairings-web/internal/web/templates/layout"
	"github.com/mcoot/pairings-web/internal/web/templates/pages"
)

// Backend is the part of the pairing service the pages use.
// *connection.Connection implements it.
type Backend interface {
	CreateTournament(ctx context.Context, name string, rounds uint32) (*model.Tournament, error)
	Tournament(ctx context.Context, id identity.Identity) (*model.Tournament, error)
	AdvancePairing(ctx context.Context, id identity.Identity) ([]*model.Game, error)
	CreatePlayer(ctx context.Context, name string, rating uint32, t *model.Tournament) (*model.Player, error)
	Player(ctx context.Context, id identity.Identity) (*model.Player, error)
	UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	Game(ctx context.Context, id identity.Identity) (*model.Game, error)
	RegisterResult(ctx context.Context, g *model.Game) (*model.Game, error)
}

// identityFromRoute reads the {uuid} and optional {hmac} route variables.
func identityFromRoute(r *http.Request) (identity.Identity, error) {
	vars := mux.Vars(r)
	return identity.Parse(vars["uuid"], vars["hmac"])
}

// statusOf maps an error to the status and message shown to the visitor.
// Transport failures carry no diagnostics.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, identity.ErrMalformedIdentity):
		return http.StatusBadRequest, "That link is not valid."
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Nothing exists at this link."
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden, "This link does not allow that."
	case errors.Is(err, model.ErrRejected):
		return http.StatusBadRequest, "The pairing service rejected the request."
	case errors.Is(err, model.ErrPairingUnavailable):
		return http.StatusConflict, "No round can be paired right now."
	case errors.Is(err, model.ErrTransportFailure):
		return http.StatusServiceUnavailable, "Backend service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// isRejection reports whether err is a business rule the visitor can act on.
func isRejection(err error) bool {
	return errors.Is(err, model.ErrRejected) || errors.Is(err, model.ErrPairingUnavailable)
}

// reason returns the pairing service's explanation for err.
func reason(err error) string {
	if message, ok := connection.Reason(err); ok {
		return message
	}
	_, message := statusOf(err)
	return message
}

func render(w http.ResponseWriter, r *http.Request, code int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_ = c.Render(r.Context(), w)
}

// renderError renders the error page for err.
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := statusOf(err)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("error", err.Error()))
	}
	render(w, r, code, pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: http.StatusText(code), Flash: middleware.GetFlash(r.Context())},
		Status:   code,
		Message:  message,
	}))
}

// reject flashes a rejection and sends the visitor back to target.
func reject(w http.ResponseWriter, r *http.Request, target, message string) {
	middleware.SetFlash(w, middleware.FlashError, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formError reports a failed form submission: rejections are flashed on
// the page at back, anything else renders the error page.
func formError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, back string, err error) {
	if isRejection(err) {
		reject(w, r, back, reason(err))
		return
	}
	renderError(w, r, logger, err)
}

// succeed flashes a confirmation and sends the visitor to target.
func succeed(w http.ResponseWriter, r *http.Request, target, message string) {
	middleware.SetFlash(w, middleware.FlashSuccess, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
