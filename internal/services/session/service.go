package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/clock"
	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
)

// Service manages live game sessions
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new session service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Start creates a new active session for the user
func (s *Service) Start(ctx context.Context, user *model.User, mode string) (*model.GameSession, error) {
	session := &model.GameSession{
		ID:        model.SessionID(uuid.NewString()),
		UserID:    user.ID,
		Username:  user.Username,
		Mode:      mode,
		Active:    true,
		StartedAt: s.clock.Now(),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session started",
		slog.String("session_id", string(session.ID)),
		slog.String("user_id", string(user.ID)),
		slog.String("mode", mode),
	)
	return session, nil
}

// Get returns a session by id
func (s *Service) Get(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return s.storage.GetSession(ctx, id)
}

// ListActive returns up to limit active sessions, most recent activity first
func (s *Service) ListActive(ctx context.Context, limit int) ([]*model.GameSession, error) {
	return s.storage.ListActiveSessions(ctx, limit)
}

// Update merges the given fields into the session owned by user. An empty
// patch returns the session unchanged without touching LastUpdatedAt.
func (s *Service) Update(ctx context.Context, user *model.User, id model.SessionID, patch model.SessionPatch) (*model.GameSession, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != user.ID {
		return nil, model.ErrNotSessionOwner
	}

	if patch.IsEmpty() {
		return session, nil
	}

	return s.storage.ApplySessionPatch(ctx, id, patch, s.clock.Now())
}

// End terminates the session owned by user, freezing both score fields at
// finalScore. Ending is terminal; later updates are rejected.
func (s *Service) End(ctx context.Context, user *model.User, id model.SessionID, finalScore int) (*model.GameSession, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != user.ID {
		return nil, model.ErrNotSessionOwner
	}

	ended, err := s.storage.ApplySessionPatch(ctx, id, model.EndPatch(finalScore), s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("session ended",
		slog.String("session_id", string(id)),
		slog.String("user_id", string(user.ID)),
		slog.Int("final_score", finalScore),
	)
	return ended, nil
}
