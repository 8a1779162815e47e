package minelayer

import (
	"context"
	"log/slog"

	"github.com/crayola-eater/code-and-conquer/internal/dependencies/clock"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// Engine handles the Minelayer role's one-shot mine placement
type Engine struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewEngine creates a new minelayer Engine
func NewEngine(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// PlaceMineResult is returned by PlaceMine
type PlaceMineResult struct {
	Square       model.GridSquare
	RequestsLeft int
}

// PlaceMine spends one request to arm a mine on a square. Placement is
// role-gated (Minelayer only) and one-shot per team. A mine already on
// the square is overwritten regardless of who placed it; only the latest
// placement survives. Precondition priority: credential and team match,
// quota, coordinates, game status, role, role not already used. A failing
// check performs zero mutation, so the team keeps both its request and
// its unused role.
func (e *Engine) PlaceMine(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*PlaceMineResult, error) {
	updated, err := e.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		team := g.TeamByID(sender.TeamID)
		if team == nil || team.Key != sender.TeamKey {
			return model.ErrInvalidCredentials
		}
		if team.RequestsLeft <= 0 {
			return model.ErrNoMoreRequestsLeft
		}
		square := g.SquareAt(row, column)
		if square == nil {
			return &model.InvalidCoordinatesError{Row: row, Column: column}
		}
		if g.Status != model.StatusStarted {
			return &model.InvalidGameStatusError{
				Current:  g.Status,
				Required: model.StatusStarted,
				Action:   "place mine",
			}
		}
		if team.Role != model.RoleMinelayer {
			return &model.OnlyMinelayersCanPlaceMinesError{Role: team.Role}
		}
		if team.RoleUsed {
			return model.ErrRoleAlreadyUsed
		}

		team.RoleUsed = true
		team.RequestsLeft--
		now := e.clock.Now()
		team.TimeOfLastCommand = &now

		// Last writer wins: any prior mine on this square is replaced
		square.Mine = &model.Mine{PlacedBy: sender.TeamID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	square := updated.SquareAt(row, column)
	team := updated.TeamByID(sender.TeamID)
	if square == nil || team == nil {
		return nil, &model.InvalidCoordinatesError{Row: row, Column: column}
	}

	e.logger.Info("mine placed",
		slog.String("game_id", string(gameID)),
		slog.String("team_id", string(sender.TeamID)),
		slog.Int("row", row),
		slog.Int("column", column),
	)

	return &PlaceMineResult{
		Square:       *square,
		RequestsLeft: team.RequestsLeft,
	}, nil
}

// EngineInterface is implemented by Engine, for dependency injection
type EngineInterface interface {
	PlaceMine(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*PlaceMineResult, error)
}

var _ EngineInterface = (*Engine)(nil)
