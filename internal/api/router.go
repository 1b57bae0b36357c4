package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pairings-web/internal/api/handler"
	"github.com/mcoot/pairings-web/internal/api/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Backend handler.Backend
}

// Register mounts the API routes under /api/v1 on r
func Register(r *mux.Router, cfg RouterConfig) {
	tournamentHandler := handler.NewTournamentHandler(cfg.Backend)
	playerHandler := handler.NewPlayerHandler(cfg.Backend)
	gameHandler := handler.NewGameHandler(cfg.Backend)
	healthHandler := handler.NewHealthHandler(cfg.Backend)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Tournament routes; sub-resources are registered before the optional proof segment
	api.HandleFunc("/tournaments", tournamentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{uuid}/players", tournamentHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{uuid}/players", tournamentHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/games", tournamentHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/{hmac}/players", tournamentHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/{hmac}/games", tournamentHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/{hmac}/pair", tournamentHandler.Pair).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{uuid}", tournamentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/{hmac}", tournamentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{uuid}/{hmac}", tournamentHandler.Update).Methods(http.MethodPatch)

	// Player routes
	api.HandleFunc("/players/{uuid}/games", playerHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/players/{uuid}/expel", playerHandler.Expel).Methods(http.MethodPost)
	api.HandleFunc("/players/{uuid}/{hmac}/games", playerHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/players/{uuid}/{hmac}/withdraw", playerHandler.Withdraw).Methods(http.MethodPost)
	api.HandleFunc("/players/{uuid}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{uuid}/{hmac}", playerHandler.Get).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games/{uuid}/{hmac}/result", gameHandler.Result).Methods(http.MethodPost)
	api.HandleFunc("/games/{uuid}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{uuid}/{hmac}", gameHandler.Get).Methods(http.MethodGet)
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}
