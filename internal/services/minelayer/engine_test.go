package minelayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crayola-eater/code-and-conquer/internal/dependencies/mocks"
	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage/memory"
	"github.com/crayola-eater/code-and-conquer/internal/testutil"
)

const gameID = model.GameID("GAME0001")

type EngineSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	engine  *Engine
	ctx     context.Context

	minelayer model.SenderDetails
	spy       model.SenderDetails
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.engine = NewEngine(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	s.minelayer = model.SenderDetails{TeamID: "team-1", TeamKey: "key-1"}
	s.spy = model.SenderDetails{TeamID: "team-2", TeamKey: "key-2"}
}

func (s *EngineSuite) createGame(status model.GameStatus, tweak func(*model.Game)) {
	now := s.clock.Now()
	game := &model.Game{
		ID:         gameID,
		Status:     status,
		HostTeamID: "team-1",
		Teams: []model.Team{
			{
				ID:           "team-1",
				DisplayName:  "Sappers",
				Key:          "key-1",
				Role:         model.RoleMinelayer,
				RequestsLeft: model.StartingRequests,
				CreatedAt:    now,
			},
			{
				ID:           "team-2",
				DisplayName:  "Watchers",
				Key:          "key-2",
				Role:         model.RoleSpy,
				RequestsLeft: model.StartingRequests,
				CreatedAt:    now,
			},
			{
				ID:           "team-3",
				DisplayName:  "Diggers",
				Key:          "key-3",
				Role:         model.RoleMinelayer,
				RequestsLeft: model.StartingRequests,
				CreatedAt:    now,
			},
		},
		Grid:      model.NewGrid(now),
		CreatedAt: now,
	}
	if tweak != nil {
		tweak(game)
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
}

func (s *EngineSuite) storedGame() *model.Game {
	game, err := s.storage.GetGame(s.ctx, gameID)
	s.Require().NoError(err)
	return game
}

func (s *EngineSuite) TestPlaceMineSucceeds() {
	s.createGame(model.StatusStarted, nil)

	result, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 2, 2)
	s.Require().NoError(err)

	s.Require().NotNil(result.Square.Mine)
	s.Equal(s.minelayer.TeamID, result.Square.Mine.PlacedBy)
	s.Nil(result.Square.Mine.TriggeredBy)
	s.Equal(model.StartingRequests-1, result.RequestsLeft)

	game := s.storedGame()
	sq := game.SquareAt(2, 2)
	s.Require().NotNil(sq.Mine)
	s.Equal(s.minelayer.TeamID, sq.Mine.PlacedBy)

	team := game.TeamByID(s.minelayer.TeamID)
	s.True(team.RoleUsed)
	s.Equal(model.StartingRequests-1, team.RequestsLeft)
	s.Require().NotNil(team.TimeOfLastCommand)
	s.Equal(s.clock.Now(), *team.TimeOfLastCommand)
}

func (s *EngineSuite) TestPlaceMineDoesNotTouchHealthOrOwnership() {
	owner := model.TeamID("team-2")
	s.createGame(model.StatusStarted, func(g *model.Game) {
		sq := g.SquareAt(1, 1)
		sq.OwnerID = &owner
		sq.Health = 80
	})

	result, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 1, 1)
	s.Require().NoError(err)
	s.Equal(80, result.Square.Health)
	s.Equal(owner, *result.Square.OwnerID)
}

func (s *EngineSuite) TestPlaceMineUnknownGame() {
	_, err := s.engine.PlaceMine(s.ctx, "MISSING1", s.minelayer, 0, 0)

	var invalidID *model.InvalidGameIDError
	s.ErrorAs(err, &invalidID)
}

func (s *EngineSuite) TestPlaceMineRejectsBadCredentials() {
	s.createGame(model.StatusStarted, nil)

	_, err := s.engine.PlaceMine(s.ctx, gameID, model.SenderDetails{TeamID: "team-9", TeamKey: "key-1"}, 0, 0)
	s.ErrorIs(err, model.ErrInvalidCredentials)

	_, err = s.engine.PlaceMine(s.ctx, gameID, model.SenderDetails{TeamID: "team-1", TeamKey: "wrong"}, 0, 0)
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *EngineSuite) TestPlaceMineRejectsExhaustedQuota() {
	s.createGame(model.StatusStarted, func(g *model.Game) {
		g.Teams[0].RequestsLeft = 0
	})

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 0, 0)
	s.ErrorIs(err, model.ErrNoMoreRequestsLeft)

	// The unused role survives the failed attempt
	s.False(s.storedGame().TeamByID(s.minelayer.TeamID).RoleUsed)
}

func (s *EngineSuite) TestPlaceMineBadCoordinates() {
	s.createGame(model.StatusStarted, nil)

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 5, 0)

	var coordsErr *model.InvalidCoordinatesError
	s.Require().ErrorAs(err, &coordsErr)

	team := s.storedGame().TeamByID(s.minelayer.TeamID)
	s.Equal(model.StartingRequests, team.RequestsLeft)
	s.False(team.RoleUsed)
}

func (s *EngineSuite) TestPlaceMineRequiresStartedStatus() {
	s.createGame(model.StatusWaitingForRegistrations, nil)

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 0, 0)

	var statusErr *model.InvalidGameStatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(model.StatusStarted, statusErr.Required)
}

func (s *EngineSuite) TestPlaceMineRejectsNonMinelayer() {
	s.createGame(model.StatusStarted, nil)

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.spy, 0, 0)

	var roleErr *model.OnlyMinelayersCanPlaceMinesError
	s.Require().ErrorAs(err, &roleErr)
	s.Equal(model.RoleSpy, roleErr.Role)

	// A rejected placement costs nothing
	s.Equal(model.StartingRequests, s.storedGame().TeamByID(s.spy.TeamID).RequestsLeft)
}

func (s *EngineSuite) TestPlaceMineIsOneShot() {
	s.createGame(model.StatusStarted, nil)

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 0, 0)
	s.Require().NoError(err)

	_, err = s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 4, 4)
	s.ErrorIs(err, model.ErrRoleAlreadyUsed)

	game := s.storedGame()
	s.Nil(game.SquareAt(4, 4).Mine)
	// The failed second attempt spends nothing further
	s.Equal(model.StartingRequests-1, game.TeamByID(s.minelayer.TeamID).RequestsLeft)
}

func (s *EngineSuite) TestPlaceMineOverwritesExistingMine() {
	s.createGame(model.StatusStarted, nil)
	digger := model.SenderDetails{TeamID: "team-3", TeamKey: "key-3"}

	_, err := s.engine.PlaceMine(s.ctx, gameID, s.minelayer, 3, 3)
	s.Require().NoError(err)

	result, err := s.engine.PlaceMine(s.ctx, gameID, digger, 3, 3)
	s.Require().NoError(err)

	// Last writer wins; the first mine is simply gone
	s.Equal(digger.TeamID, result.Square.Mine.PlacedBy)

	sq := s.storedGame().SquareAt(3, 3)
	s.Equal(model.TeamID("team-3"), sq.Mine.PlacedBy)
}
