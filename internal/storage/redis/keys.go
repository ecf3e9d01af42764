package redis

import (
	"fmt"

	"github.com/mcoot/unogame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "uno"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.GameID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of all session ids
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
