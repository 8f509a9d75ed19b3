package leaderboard

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/clock"
	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
)

// Service manages the global score leaderboard
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Submit records a score for the user and returns the entry with its rank
// assigned. Ranks across the whole board are recomputed on every submission.
func (s *Service) Submit(ctx context.Context, user *model.User, score int, mode string, duration *int) (*model.LeaderboardEntry, error) {
	entry := &model.LeaderboardEntry{
		ID:          model.EntryID(uuid.NewString()),
		UserID:      user.ID,
		Username:    user.Username,
		Score:       score,
		Mode:        mode,
		Duration:    duration,
		SubmittedAt: s.clock.Now(),
	}

	entry, err := s.storage.AddLeaderboardEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("score submitted",
		slog.String("user_id", string(user.ID)),
		slog.String("mode", mode),
		slog.Int("score", score),
		slog.Int("rank", entry.Rank),
	)
	return entry, nil
}

// List returns the page [offset, offset+limit) of the ranked order, filtered
// by mode when non-empty, plus the total count of matching entries. Returned
// ranks are global, not recomputed within the filtered subset.
func (s *Service) List(ctx context.Context, mode string, limit, offset int) ([]*model.LeaderboardEntry, int, error) {
	entries, err := s.storage.ListLeaderboard(ctx, mode, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.storage.CountLeaderboard(ctx, mode)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
