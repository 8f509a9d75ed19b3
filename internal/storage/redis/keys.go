package redis

import (
	"fmt"

	"github.com/neonsnake/neonsnake-backend/internal/model"
)

// Key prefix for all stored data
const keyPrefix = "neonsnake"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// entryKey returns the Redis key for a LeaderboardEntry
func entryKey(id model.EntryID) string {
	return fmt.Sprintf("%s:entry:%s", keyPrefix, id)
}

// scoreIndexKey returns the Redis key for the ZSET ordering all entries
func scoreIndexKey() string {
	return fmt.Sprintf("%s:idx:scores", keyPrefix)
}

// entrySeqKey returns the Redis key for the submission sequence counter
func entrySeqKey() string {
	return fmt.Sprintf("%s:entry_seq", keyPrefix)
}

// modeCountKey returns the Redis key for the per-mode entry counter
func modeCountKey(mode string) string {
	return fmt.Sprintf("%s:count:mode:%s", keyPrefix, mode)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// activeSessionsKey returns the Redis key for the SET of active session ids
func activeSessionsKey() string {
	return fmt.Sprintf("%s:idx:active_sessions", keyPrefix)
}
