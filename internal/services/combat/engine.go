package combat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crayola-eater/code-and-conquer/internal/dependencies/clock"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// Engine handles the square health/ownership mutations: Attack and Defend.
// Every command is one atomic predicate-and-mutate operation against the
// store; a failing predicate guarantees zero mutation.
type Engine struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewEngine creates a new combat Engine
func NewEngine(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// AttackResult is returned by Attack
type AttackResult struct {
	Square       model.GridSquare
	Conquered    bool
	RequestsLeft int
}

// DefendResult is returned by Defend
type DefendResult struct {
	Square       model.GridSquare
	RequestsLeft int
}

// Attack spends one request to strike a square. At health above 1 the
// square loses one health and keeps its owner; at health 1 or 0 it is
// conquered: health resets to 120 and ownership passes to the attacker.
// Precondition priority: team existence, credential, quota, game status.
// A coordinate that does not resolve aborts the whole transaction as
// FailedToAttackSquare; the attacker never loses a request without the
// square being affected.
func (e *Engine) Attack(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*AttackResult, error) {
	var conquered bool

	updated, err := e.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		team := g.TeamByID(sender.TeamID)
		if team == nil {
			return &model.InvalidTeamIDError{TeamID: sender.TeamID}
		}
		if team.Key != sender.TeamKey {
			return model.ErrInvalidCredentials
		}
		if team.RequestsLeft <= 0 {
			return model.ErrNoMoreRequestsLeft
		}
		if g.Status != model.StatusStarted {
			return &model.InvalidGameStatusError{
				Current:  g.Status,
				Required: model.StatusStarted,
				Action:   "attack square",
			}
		}

		square := g.SquareAt(row, column)
		if square == nil {
			return model.ErrFailedToAttackSquare
		}

		team.RequestsLeft--
		now := e.clock.Now()
		team.TimeOfLastCommand = &now

		if square.Health > 1 {
			square.Health--
		} else {
			square.Health = model.MaxSquareHealth
			owner := sender.TeamID
			square.OwnerID = &owner
		}
		conquered = square.Health == model.MaxSquareHealth
		return nil
	})
	if err != nil {
		var integrity *storage.IntegrityError
		if errors.As(err, &integrity) {
			e.logger.Error("attack rolled back",
				slog.String("game_id", string(gameID)),
				slog.String("error", integrity.Error()),
			)
			return nil, model.ErrFailedToAttackSquare
		}
		return nil, err
	}

	square := updated.SquareAt(row, column)
	team := updated.TeamByID(sender.TeamID)
	if square == nil || team == nil {
		return nil, model.ErrFailedToAttackSquare
	}

	return &AttackResult{
		Square:       *square,
		Conquered:    conquered,
		RequestsLeft: team.RequestsLeft,
	}, nil
}

// Defend spends one request to reinforce a square by one health, capped
// at 60 while unowned and 120 once owned. Ownership never changes.
// Precondition priority: credential and team match, quota, coordinates,
// game status.
func (e *Engine) Defend(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*DefendResult, error) {
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
				Action:   "defend square",
			}
		}

		team.RequestsLeft--
		now := e.clock.Now()
		team.TimeOfLastCommand = &now

		limit := model.UnownedHealthCap
		if square.OwnerID != nil {
			limit = model.MaxSquareHealth
		}
		if square.Health < limit {
			square.Health++
		}
		return nil
	})
	if err != nil {
		var integrity *storage.IntegrityError
		if errors.As(err, &integrity) {
			e.logger.Error("defend rolled back",
				slog.String("game_id", string(gameID)),
				slog.String("error", integrity.Error()),
			)
			return nil, model.ErrFailedToDefendSquare
		}
		return nil, err
	}

	square := updated.SquareAt(row, column)
	team := updated.TeamByID(sender.TeamID)
	if square == nil || team == nil {
		return nil, model.ErrFailedToDefendSquare
	}

	return &DefendResult{
		Square:       *square,
		RequestsLeft: team.RequestsLeft,
	}, nil
}

// EngineInterface is implemented by Engine, for dependency injection
type EngineInterface interface {
	Attack(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*AttackResult, error)
	Defend(ctx context.Context, gameID model.GameID, sender model.SenderDetails, row, column int) (*DefendResult, error)
}

var _ EngineInterface = (*Engine)(nil)
