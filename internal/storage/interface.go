package storage

import (
	"context"
	"time"

	"github.com/neonsnake/neonsnake-backend/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations. Lookups are case-sensitive exact matches. SaveUser does
	// not enforce uniqueness; callers must check email/username first.
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Leaderboard operations. AddLeaderboardEntry appends the entry and
	// reassigns ranks 1..N across the entire board (score descending, ties
	// kept in insertion order); the returned entry carries its rank.
	// ListLeaderboard filters by mode when non-empty and pages the global
	// order; ranks stay global, never renumbered within the filtered subset.
	AddLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error)
	ListLeaderboard(ctx context.Context, mode string, limit, offset int) ([]*model.LeaderboardEntry, error)
	CountLeaderboard(ctx context.Context, mode string) (int, error)

	// Session operations. ApplySessionPatch merges the patch and stamps
	// LastUpdatedAt atomically with respect to concurrent patches, and
	// rejects patches against an ended session with model.ErrSessionEnded.
	// Ownership checks are the caller's responsibility.
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	ListActiveSessions(ctx context.Context, limit int) ([]*model.GameSession, error)
	ApplySessionPatch(ctx context.Context, id model.SessionID, patch model.SessionPatch, now time.Time) (*model.GameSession, error)
}
