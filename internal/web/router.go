package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pairings-web/internal/web/handler"
	"github.com/mcoot/pairings-web/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger    *slog.Logger
	Backend   handler.Backend
	StaticDir string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter().StrictSlash(true)

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	homeHandler := handler.NewHomeHandler()
	tournamentHandler := handler.NewTournamentHandler(cfg.Backend, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.Backend, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.Backend, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	// Tournament routes; the proof segment is optional on reads
	pages.HandleFunc("/tournament", tournamentHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/tournament/{uuid}/", tournamentHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/tournament/{uuid}/{hmac}/", tournamentHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/tournament/{uuid}/players", tournamentHandler.SignUp).Methods(http.MethodPost)
	pages.HandleFunc("/tournament/{uuid}/{hmac}/pair", tournamentHandler.Pair).Methods(http.MethodPost)

	// Player routes
	pages.HandleFunc("/player/{uuid}/", playerHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/player/{uuid}/{hmac}/", playerHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/player/{uuid}/{hmac}/withdraw", playerHandler.Withdraw).Methods(http.MethodPost)

	// Game routes
	pages.HandleFunc("/game/{uuid}/", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/game/{uuid}/{hmac}/", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/game/{uuid}/{hmac}/result", gameHandler.Result).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)

	return r
}
