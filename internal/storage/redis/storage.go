package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each game is one JSON document, so a WATCH on the game key makes
// UpdateGame an optimistic serializable transaction over the whole
// aggregate.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	if err := game.Validate(); err != nil {
		return &storage.IntegrityError{Cause: err}
	}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, &model.InvalidGameIDError{GameID: id}
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, mutate func(*model.Game) error) (*model.Game, error) {
	key := gameKey(id)

	retries := s.cfg.UpdateRetries
	if retries <= 0 {
		retries = DefaultConfig().UpdateRetries
	}

	for attempt := 0; attempt < retries; attempt++ {
		var updated *model.Game

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return &model.InvalidGameIDError{GameID: id}
				}
				return err
			}

			var game model.Game
			if err := json.Unmarshal(data, &game); err != nil {
				return err
			}

			if err := mutate(&game); err != nil {
				return err
			}
			if err := game.Validate(); err != nil {
				return &storage.IntegrityError{Cause: err}
			}

			next, err := json.Marshal(&game)
			if err != nil {
				return err
			}

			// The write only commits if the key is unchanged since WATCH
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, next, s.cfg.GameTTL)
				return nil
			})
			if err != nil {
				return err
			}

			updated = &game
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, storage.ErrTransactionConflict
}
