package handler

import (
	"net/http"

	"github.com/mcoot/pairings-web/internal/web/middleware"
	"github.com/mcoot/pairings-web/internal/web/templates/layout"
	"github.com/mcoot/pairings-web/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "New tournament",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	render(w, r, http.StatusOK, pages.Home(data))
}

// NotFound renders the error page for unknown paths
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: "Not Found"},
		Status:   http.StatusNotFound,
		Message:  "There is no page at this address.",
	}))
}
