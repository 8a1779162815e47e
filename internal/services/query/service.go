package query

import (
	"context"
	"errors"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// Service provides read-only projections over game state. Queries never
// mutate state and carry no quota cost.
type Service struct {
	storage storage.Storage
}

// New creates a new query Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// GetGame returns a full snapshot of a game: status, teams, and grid
func (s *Service) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, gameID)
}

// GetGridSquare returns a snapshot of a single square. A game id or
// coordinate pair that does not resolve to a square reports
// FailedToQueryGridSquare.
func (s *Service) GetGridSquare(ctx context.Context, gameID model.GameID, row, column int) (*model.GridSquare, error) {
	game, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		var invalidID *model.InvalidGameIDError
		if errors.As(err, &invalidID) {
			return nil, model.ErrFailedToQueryGridSquare
		}
		return nil, err
	}

	square := game.SquareAt(row, column)
	if square == nil {
		return nil, model.ErrFailedToQueryGridSquare
	}
	return square, nil
}

// ServiceInterface is implemented by Service, for dependency injection
type ServiceInterface interface {
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetGridSquare(ctx context.Context, gameID model.GameID, row, column int) (*model.GridSquare, error)
}

var _ ServiceInterface = (*Service)(nil)
