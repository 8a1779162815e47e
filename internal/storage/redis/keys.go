package redis

import (
	"fmt"

	"github.com/crayola-eater/code-and-conquer/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "conquer"

// gameKey returns the Redis key for a Game aggregate
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
