package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/crayola-eater/code-and-conquer/internal/api/request"
	"github.com/crayola-eater/code-and-conquer/internal/api/response"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/services/combat"
	"github.com/crayola-eater/code-and-conquer/internal/services/minelayer"
	"github.com/crayola-eater/code-and-conquer/internal/services/query"
)

// GameHandler handles in-game actions and query endpoints
type GameHandler struct {
	combat    *combat.Engine
	minelayer *minelayer.Engine
	query     *query.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(combatEngine *combat.Engine, minelayerEngine *minelayer.Engine, queryService *query.Service) *GameHandler {
	return &GameHandler{
		combat:    combatEngine,
		minelayer: minelayerEngine,
		query:     queryService,
	}
}

// decodeAction parses the shared body of attack/defend/mine requests
func decodeAction(r *http.Request) (model.GameID, model.SenderDetails, int, int, error) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.SquareActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", model.SenderDetails{}, 0, 0, NewInvalidRequestError("Invalid JSON body")
	}

	sender := model.SenderDetails{
		TeamID:  model.TeamID(req.TeamID),
		TeamKey: req.TeamKey,
	}
	return gameID, sender, req.Row, req.Column, nil
}

// Attack handles POST /api/v1/games/{game_id}/attack
func (h *GameHandler) Attack(w http.ResponseWriter, r *http.Request) {
	gameID, sender, row, column, err := decodeAction(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.combat.Attack(r.Context(), gameID, sender, row, column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AttackResponse{
		Square:       response.GridSquareFromModel(&result.Square),
		Conquered:    result.Conquered,
		RequestsLeft: result.RequestsLeft,
	})
}

// Defend handles POST /api/v1/games/{game_id}/defend
func (h *GameHandler) Defend(w http.ResponseWriter, r *http.Request) {
	gameID, sender, row, column, err := decodeAction(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.combat.Defend(r.Context(), gameID, sender, row, column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DefendResponse{
		Square:       response.GridSquareFromModel(&result.Square),
		RequestsLeft: result.RequestsLeft,
	})
}

// PlaceMine handles POST /api/v1/games/{game_id}/mine
func (h *GameHandler) PlaceMine(w http.ResponseWriter, r *http.Request) {
	gameID, sender, row, column, err := decodeAction(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.minelayer.PlaceMine(r.Context(), gameID, sender, row, column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceMineResponse{
		Square:       response.GridSquareFromModel(&result.Square),
		RequestsLeft: result.RequestsLeft,
	})
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.query.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// GetSquare handles GET /api/v1/games/{game_id}/squares/{row}/{column}
func (h *GameHandler) GetSquare(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := model.GameID(vars["game_id"])

	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("row must be an integer"))
		return
	}
	column, err := strconv.Atoi(vars["column"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("column must be an integer"))
		return
	}

	square, err := h.query.GetGridSquare(r.Context(), gameID, row, column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GridSquareFromModel(square))
}
