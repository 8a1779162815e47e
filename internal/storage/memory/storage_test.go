package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	host := model.Team{
		ID:           "team-1",
		DisplayName:  "Hosts",
		Key:          "key-1",
		Role:         model.RoleMinelayer,
		RequestsLeft: model.StartingRequests,
		CreatedAt:    now,
	}
	return &model.Game{
		ID:         id,
		Status:     model.StatusWaitingForRegistrations,
		HostTeamID: host.ID,
		Teams:      []model.Team{host},
		Grid:       model.NewGrid(now),
		CreatedAt:  now,
	}
}

func (s *StorageSuite) TestCreateAndGetGame() {
	game := s.newGame("GAME0001")

	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Status, retrieved.Status)
	s.Len(retrieved.Grid, model.GridSize*model.GridSize)
}

func (s *StorageSuite) TestCreateGameRejectsInvalidAggregate() {
	game := s.newGame("GAME0001")
	game.Grid[0].Health = model.MaxSquareHealth + 1

	err := s.storage.CreateGame(s.ctx, game)

	var integrity *storage.IntegrityError
	s.ErrorAs(err, &integrity)

	exists, err := s.storage.GameExists(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "MISSING1")

	var invalidID *model.InvalidGameIDError
	s.Require().ErrorAs(err, &invalidID)
	s.Equal(model.GameID("MISSING1"), invalidID.GameID)
}

func (s *StorageSuite) TestGameExists() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("GAME0001")))

	exists, err := s.storage.GameExists(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "GAME0002")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestSnapshotsAreIsolated() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("GAME0001")))

	snapshot, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)

	snapshot.Grid[0].Health = 1
	snapshot.Teams[0].RequestsLeft = 0
	snapshot.Status = model.StatusEnded

	fresh, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(model.DefaultSquareHealth, fresh.Grid[0].Health)
	s.Equal(model.StartingRequests, fresh.Teams[0].RequestsLeft)
	s.Equal(model.StatusWaitingForRegistrations, fresh.Status)
}

func (s *StorageSuite) TestUpdateGameCommits() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("GAME0001")))

	updated, err := s.storage.UpdateGame(s.ctx, "GAME0001", func(g *model.Game) error {
		g.Status = model.StatusStarted
		g.Teams[0].RequestsLeft--
		return nil
	})
	s.Require().NoError(err)
	s.Equal(model.StatusStarted, updated.Status)
	s.Equal(model.StartingRequests-1, updated.Teams[0].RequestsLeft)

	fresh, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(model.StatusStarted, fresh.Status)
}

func (s *StorageSuite) TestUpdateGameNotFound() {
	_, err := s.storage.UpdateGame(s.ctx, "MISSING1", func(g *model.Game) error {
		return nil
	})

	var invalidID *model.InvalidGameIDError
	s.ErrorAs(err, &invalidID)
}

func (s *StorageSuite) TestUpdateGameRollsBackOnMutateError() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("GAME0001")))
	boom := errors.New("boom")

	_, err := s.storage.UpdateGame(s.ctx, "GAME0001", func(g *model.Game) error {
		// Mutations before the error must not leak into the store
		g.Status = model.StatusEnded
		g.Teams[0].RequestsLeft = 0
		return boom
	})
	s.ErrorIs(err, boom)

	fresh, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(model.StatusWaitingForRegistrations, fresh.Status)
	s.Equal(model.StartingRequests, fresh.Teams[0].RequestsLeft)
}

func (s *StorageSuite) TestUpdateGameRollsBackOnIntegrityViolation() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("GAME0001")))

	_, err := s.storage.UpdateGame(s.ctx, "GAME0001", func(g *model.Game) error {
		g.Grid[0].Health = -5
		g.Status = model.StatusStarted
		return nil
	})

	var integrity *storage.IntegrityError
	s.Require().ErrorAs(err, &integrity)

	fresh, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(model.DefaultSquareHealth, fresh.Grid[0].Health)
	s.Equal(model.StatusWaitingForRegistrations, fresh.Status)
}

func (s *StorageSuite) TestUpdateGameSerializesConcurrentWriters() {
	game := s.newGame("GAME0001")
	game.Status = model.StatusStarted
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	const writers = 50

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.storage.UpdateGame(s.ctx, "GAME0001", func(g *model.Game) error {
				if g.Teams[0].RequestsLeft <= 0 {
					return model.ErrNoMoreRequestsLeft
				}
				g.Teams[0].RequestsLeft--
				g.Grid[0].Health--
				return nil
			})
		}()
	}
	wg.Wait()

	// Exactly the quota's worth of decrements commit, never more
	fresh, err := s.storage.GetGame(s.ctx, "GAME0001")
	s.Require().NoError(err)
	s.Equal(0, fresh.Teams[0].RequestsLeft)
	s.Equal(model.DefaultSquareHealth-model.StartingRequests, fresh.Grid[0].Health)
}
