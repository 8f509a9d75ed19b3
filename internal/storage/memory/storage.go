package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The store owns its objects: values cross the API boundary as copies, so
// re-ranks and patches applied under the lock never show through pointers
// handed out earlier.
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	emailIndex    map[string]model.UserID
	usernameIndex map[string]model.UserID

	// leaderboard is kept sorted score-descending; ties stay in insertion
	// order because inserts use a stable sort and never remove entries
	leaderboard []*model.LeaderboardEntry

	sessions map[model.SessionID]*model.GameSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		emailIndex:    make(map[string]model.UserID),
		usernameIndex: make(map[string]model.UserID),
		sessions:      make(map[model.SessionID]*model.GameSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Shallow copies suffice: nested pointers (GameState, Duration) are only ever
// replaced wholesale, never mutated in place.

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func cloneEntry(e *model.LeaderboardEntry) *model.LeaderboardEntry {
	c := *e
	return &c
}

func cloneSession(sess *model.GameSession) *model.GameSession {
	c := *sess
	return &c
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	s.emailIndex[user.Email] = user.ID
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// Leaderboard operations

func (s *Storage) AddLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneEntry(entry)
	s.leaderboard = append(s.leaderboard, stored)
	sort.SliceStable(s.leaderboard, func(i, j int) bool {
		return s.leaderboard[i].Score > s.leaderboard[j].Score
	})
	for i, e := range s.leaderboard {
		e.Rank = i + 1
	}

	return cloneEntry(stored), nil
}

func (s *Storage) ListLeaderboard(ctx context.Context, mode string, limit, offset int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.leaderboard
	if mode != "" {
		filtered = make([]*model.LeaderboardEntry, 0, len(s.leaderboard))
		for _, e := range s.leaderboard {
			if e.Mode == mode {
				filtered = append(filtered, e)
			}
		}
	}

	if offset >= len(filtered) {
		return []*model.LeaderboardEntry{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	page := make([]*model.LeaderboardEntry, end-offset)
	for i, e := range filtered[offset:end] {
		page[i] = cloneEntry(e)
	}
	return page, nil
}

func (s *Storage) CountLeaderboard(ctx context.Context, mode string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if mode == "" {
		return len(s.leaderboard), nil
	}
	count := 0
	for _, e := range s.leaderboard {
		if e.Mode == mode {
			count++
		}
	}
	return count, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *Storage) ListActiveSessions(ctx context.Context, limit int) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*model.GameSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		if session.Active {
			active = append(active, cloneSession(session))
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].LastActivity().After(active[j].LastActivity())
	})

	if limit < len(active) {
		active = active[:limit]
	}
	return active, nil
}

func (s *Storage) ApplySessionPatch(ctx context.Context, id model.SessionID, patch model.SessionPatch, now time.Time) (*model.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if !session.Active {
		return nil, model.ErrSessionEnded
	}

	session.Apply(patch, now)
	return cloneSession(session), nil
}
