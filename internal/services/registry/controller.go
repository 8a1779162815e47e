package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crayola-eater/code-and-conquer/internal/dependencies/clock"
	"github.com/crayola-eater/code-and-conquer/internal/dependencies/random"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

const (
	// GameCodeLength is the length of generated game codes
	GameCodeLength = 8
	// GameCodeAlphabet is the characters used in game codes (avoid confusing chars)
	GameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// TeamKeyLength is the length of generated team credentials
	TeamKeyLength = 30
	// TeamKeyAlphabet is the characters used in team credentials
	TeamKeyAlphabet = "0123456789abcdef"
)

// Controller manages game lifecycle: creation, registration, and start
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new registry Controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateAndJoinResult is returned by CreateAndJoin
type CreateAndJoinResult struct {
	GameID  model.GameID
	TeamID  model.TeamID
	TeamKey string
}

// JoinExistingResult is returned by JoinExisting
type JoinExistingResult struct {
	TeamID  model.TeamID
	TeamKey string
}

// StartResult is returned by Start
type StartResult struct {
	GameID model.GameID
	Status model.GameStatus
}

// CreateAndJoin creates a new game in WaitingForRegistrations with its
// 25 default squares and registers the first team as host. Grid
// initialization and host creation commit together or not at all.
func (c *Controller) CreateAndJoin(ctx context.Context, displayName string, role model.TeamRole) (*CreateAndJoinResult, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidTeamRole
	}

	now := c.clock.Now()

	// Generate unique game code
	var gameID model.GameID
	for {
		gameID = model.GameID(c.random.String(GameCodeLength, GameCodeAlphabet))
		exists, err := c.storage.GameExists(ctx, gameID)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	host := model.Team{
		ID:           model.TeamID(uuid.NewString()),
		DisplayName:  displayName,
		Key:          c.random.String(TeamKeyLength, TeamKeyAlphabet),
		Role:         role,
		RequestsLeft: model.StartingRequests,
		CreatedAt:    now,
	}

	game := &model.Game{
		ID:         gameID,
		Status:     model.StatusWaitingForRegistrations,
		HostTeamID: host.ID,
		Teams:      []model.Team{host},
		Grid:       model.NewGrid(now),
		CreatedAt:  now,
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		c.logger.Error("failed to create game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("host_team_id", string(host.ID)),
		slog.String("role", string(role)),
	)

	return &CreateAndJoinResult{
		GameID:  gameID,
		TeamID:  host.ID,
		TeamKey: host.Key,
	}, nil
}

// JoinExisting registers a new team with an existing game. The status
// check, name uniqueness check, and insert happen inside one store
// transaction so a concurrent Start or duplicate-name join cannot
// invalidate the decision.
func (c *Controller) JoinExisting(ctx context.Context, gameID model.GameID, displayName string, role model.TeamRole) (*JoinExistingResult, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidTeamRole
	}

	team := model.Team{
		ID:           model.TeamID(uuid.NewString()),
		DisplayName:  displayName,
		Key:          c.random.String(TeamKeyLength, TeamKeyAlphabet),
		Role:         role,
		RequestsLeft: model.StartingRequests,
		CreatedAt:    c.clock.Now(),
	}

	_, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if g.Status != model.StatusWaitingForRegistrations {
			return model.ErrCannotJoinAfterHostHasStarted
		}
		if g.TeamByDisplayName(displayName) != nil {
			return model.ErrTeamDisplayNameTaken
		}
		g.Teams = append(g.Teams, team)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("team joined",
		slog.String("game_id", string(gameID)),
		slog.String("team_id", string(team.ID)),
		slog.String("role", string(role)),
	)

	return &JoinExistingResult{
		TeamID:  team.ID,
		TeamKey: team.Key,
	}, nil
}

// Start transitions the game from WaitingForRegistrations to Started.
// Precondition priority: game existence, previous status, host identity,
// credential.
func (c *Controller) Start(ctx context.Context, gameID model.GameID, sender model.SenderDetails) (*StartResult, error) {
	updated, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if g.Status != model.StatusWaitingForRegistrations {
			return &model.InvalidGameStatusError{
				Current:  g.Status,
				Required: model.StatusWaitingForRegistrations,
				Action:   "start game",
			}
		}
		host := g.HostTeam()
		if host == nil {
			return &model.FailedToFindHostError{GameID: gameID}
		}
		if host.ID != sender.TeamID {
			return &model.OnlyHostCanStartError{TeamID: sender.TeamID}
		}
		if host.Key != sender.TeamKey {
			return model.ErrInvalidCredentials
		}
		g.Status = model.StatusStarted
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game started", slog.String("game_id", string(gameID)))

	return &StartResult{
		GameID: updated.ID,
		Status: updated.Status,
	}, nil
}

// ControllerInterface is implemented by Controller, for dependency injection
type ControllerInterface interface {
	CreateAndJoin(ctx context.Context, displayName string, role model.TeamRole) (*CreateAndJoinResult, error)
	JoinExisting(ctx context.Context, gameID model.GameID, displayName string, role model.TeamRole) (*JoinExistingResult, error)
	Start(ctx context.Context, gameID model.GameID, sender model.SenderDetails) (*StartResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
