package memory

import (
	"context"
	"sync"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Updates are serialized by a single mutex; every snapshot handed out is
// a deep copy so callers can never mutate shared state directly.
type Storage struct {
	mu    sync.RWMutex
	games map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	if err := game.Validate(); err != nil {
		return &storage.IntegrityError{Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, &model.InvalidGameIDError{GameID: id}
	}
	return game.Clone(), nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, mutate func(*model.Game) error) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.games[id]
	if !ok {
		return nil, &model.InvalidGameIDError{GameID: id}
	}

	// Mutate a private copy; the stored game is untouched until commit
	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, &storage.IntegrityError{Cause: err}
	}

	s.games[id] = next
	return next.Clone(), nil
}
