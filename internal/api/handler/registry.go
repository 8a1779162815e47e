package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crayola-eater/code-and-conquer/internal/api/request"
	"github.com/crayola-eater/code-and-conquer/internal/api/response"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/services/registry"
)

// RegistryHandler handles game registration endpoints
type RegistryHandler struct {
	registry *registry.Controller
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(registryController *registry.Controller) *RegistryHandler {
	return &RegistryHandler{registry: registryController}
}

// Create handles POST /api/v1/games
func (h *RegistryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	role, err := model.ParseTeamRole(req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.registry.CreateAndJoin(r.Context(), req.DisplayName, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterGameResponse{
		GameID:  string(result.GameID),
		TeamID:  string(result.TeamID),
		TeamKey: result.TeamKey,
	})
}

// Join handles POST /api/v1/games/{game_id}/join
func (h *RegistryHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	role, err := model.ParseTeamRole(req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.registry.JoinExisting(r.Context(), gameID, req.DisplayName, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterGameResponse{
		GameID:  string(gameID),
		TeamID:  string(result.TeamID),
		TeamKey: result.TeamKey,
	})
}

// Start handles POST /api/v1/games/{game_id}/start
func (h *RegistryHandler) Start(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	sender := model.SenderDetails{
		TeamID:  model.TeamID(req.TeamID),
		TeamKey: req.TeamKey,
	}

	result, err := h.registry.Start(r.Context(), gameID, sender)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartGameResponse{
		GameID: string(result.GameID),
		Status: string(result.Status),
	})
}
