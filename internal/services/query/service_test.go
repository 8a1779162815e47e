package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) createGame() *model.Game {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	owner := model.TeamID("team-1")
	game := &model.Game{
		ID:         "GAME0001",
		Status:     model.StatusStarted,
		HostTeamID: "team-1",
		Teams: []model.Team{
			{
				ID:           "team-1",
				DisplayName:  "Hosts",
				Key:          "key-1",
				Role:         model.RoleMinelayer,
				RoleUsed:     true,
				RequestsLeft: 17,
				CreatedAt:    now,
			},
		},
		Grid:      model.NewGrid(now),
		CreatedAt: now,
	}
	sq := game.SquareAt(2, 2)
	sq.OwnerID = &owner
	sq.Health = 90
	sq.Mine = &model.Mine{PlacedBy: owner}

	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
	return game
}

func (s *ServiceSuite) TestGetGameReturnsFullSnapshot() {
	s.createGame()

	game, err := s.service.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)

	s.Equal(model.GameID("GAME0001"), game.ID)
	s.Equal(model.StatusStarted, game.Status)
	s.Equal(model.TeamID("team-1"), game.HostTeamID)
	s.Len(game.Teams, 1)
	s.Len(game.Grid, model.GridSize*model.GridSize)

	// Mines are part of the snapshot
	sq := game.SquareAt(2, 2)
	s.Require().NotNil(sq.Mine)
	s.Equal(model.TeamID("team-1"), sq.Mine.PlacedBy)
}

func (s *ServiceSuite) TestGetGameUnknownGame() {
	_, err := s.service.GetGame(s.ctx, "MISSING1")

	var invalidID *model.InvalidGameIDError
	s.Require().ErrorAs(err, &invalidID)
	s.Equal(model.GameID("MISSING1"), invalidID.GameID)
}

func (s *ServiceSuite) TestGetGameSnapshotIsIsolated() {
	s.createGame()

	snapshot, err := s.service.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	snapshot.Teams[0].RequestsLeft = 0

	fresh, err := s.service.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(17, fresh.Teams[0].RequestsLeft)
}

func (s *ServiceSuite) TestGetGridSquareSucceeds() {
	s.createGame()

	sq, err := s.service.GetGridSquare(s.ctx, "GAME0001", 2, 2)
	s.Require().NoError(err)

	s.Equal(2, sq.Row)
	s.Equal(2, sq.Column)
	s.Equal(90, sq.Health)
	s.Require().NotNil(sq.OwnerID)
	s.Equal(model.TeamID("team-1"), *sq.OwnerID)
	s.Require().NotNil(sq.Mine)
	s.Equal(model.TeamID("team-1"), sq.Mine.PlacedBy)
}

func (s *ServiceSuite) TestGetGridSquareUnknownGame() {
	_, err := s.service.GetGridSquare(s.ctx, "MISSING1", 0, 0)
	s.ErrorIs(err, model.ErrFailedToQueryGridSquare)
}

func (s *ServiceSuite) TestGetGridSquareBadCoordinates() {
	s.createGame()

	for _, coords := range [][2]int{{5, 0}, {0, 5}, {-1, 0}, {0, -1}} {
		_, err := s.service.GetGridSquare(s.ctx, "GAME0001", coords[0], coords[1])
		s.ErrorIs(err, model.ErrFailedToQueryGridSquare)
	}
}
