package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/crayola-eater/code-and-conquer/internal/model"
)

// Storage defines the interface for game persistence. The store is the
// only point of mutual exclusion in the system: UpdateGame is the atomic
// check-and-mutate primitive every mutating command is built on.
type Storage interface {
	// CreateGame persists a new game aggregate
	CreateGame(ctx context.Context, game *model.Game) error

	// GetGame returns a snapshot of the game. The caller owns the copy;
	// mutating it never affects the stored state.
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// GameExists reports whether a game with the given id exists
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// UpdateGame applies mutate to the game inside one transaction.
	// The callback sees a private copy of the current state; if it
	// returns an error, nothing is written and the error is returned
	// unchanged. Integrity constraints are re-checked before commit and
	// surface as *IntegrityError. No other update can observe or act on
	// an intermediate state. On success the committed snapshot is
	// returned.
	UpdateGame(ctx context.Context, id model.GameID, mutate func(*model.Game) error) (*model.Game, error)
}

// ErrTransactionConflict is returned when an optimistic update keeps
// losing races against concurrent writers and runs out of retries.
var ErrTransactionConflict = errors.New("game update aborted after repeated transaction conflicts")

// IntegrityError wraps a store-level constraint violation detected while
// committing a mutation. It is distinct from the typed business errors:
// the preconditions passed but the resulting state is impossible.
type IntegrityError struct {
	Cause error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity constraint violated: %v", e.Cause)
}

func (e *IntegrityError) Unwrap() error {
	return e.Cause
}
