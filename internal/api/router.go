package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crayola-eater/code-and-conquer/internal/api/handler"
	apimiddleware "github.com/crayola-eater/code-and-conquer/internal/api/middleware"
	"github.com/crayola-eater/code-and-conquer/internal/middleware"
	"github.com/crayola-eater/code-and-conquer/internal/services/combat"
	"github.com/crayola-eater/code-and-conquer/internal/services/minelayer"
	"github.com/crayola-eater/code-and-conquer/internal/services/query"
	"github.com/crayola-eater/code-and-conquer/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Registry        *registry.Controller
	CombatEngine    *combat.Engine
	MinelayerEngine *minelayer.Engine
	QueryService    *query.Service
}

// NewRouter creates a new API router with all routes configured.
// Team credentials travel in request bodies, so there is no auth
// middleware; each action validates its sender against the game.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	registryHandler := handler.NewRegistryHandler(cfg.Registry)
	gameHandler := handler.NewGameHandler(cfg.CombatEngine, cfg.MinelayerEngine, cfg.QueryService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Registration routes
	api.HandleFunc("/games", registryHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}/join", registryHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}/start", registryHandler.Start).Methods(http.MethodPost)

	// Action routes
	api.HandleFunc("/games/{game_id}/attack", gameHandler.Attack).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}/defend", gameHandler.Defend).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}/mine", gameHandler.PlaceMine).Methods(http.MethodPost)

	// Query routes
	api.HandleFunc("/games/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{game_id}/squares/{row}/{column}", gameHandler.GetSquare).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
