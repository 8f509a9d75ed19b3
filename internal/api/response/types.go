package response

import (
	"time"

	"github.com/neonsnake/neonsnake-backend/internal/model"
)

// User represents an account in API responses. The password hash is never
// included.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        string(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is the response for signup and login
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// LeaderboardEntry represents a score submission in API responses
type LeaderboardEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      string    `json:"mode"`
	Duration  *int      `json:"duration,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Rank      int       `json:"rank"`
}

// LeaderboardEntryFromModel converts a model.LeaderboardEntry
func LeaderboardEntryFromModel(e *model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		ID:        string(e.ID),
		UserID:    string(e.UserID),
		Username:  e.Username,
		Score:     e.Score,
		Mode:      e.Mode,
		Duration:  e.Duration,
		Timestamp: e.SubmittedAt,
		Rank:      e.Rank,
	}
}

// LeaderboardPage is a page of ranked entries plus the total matching count
type LeaderboardPage struct {
	Data  []LeaderboardEntry `json:"data"`
	Total int                `json:"total"`
}

// NewLeaderboardPage builds a LeaderboardPage from model entries
func NewLeaderboardPage(entries []*model.LeaderboardEntry, total int) LeaderboardPage {
	data := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		data[i] = LeaderboardEntryFromModel(e)
	}
	return LeaderboardPage{Data: data, Total: total}
}

// GameSession represents a session in API responses
type GameSession struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Username      string           `json:"username"`
	Mode          string           `json:"mode"`
	IsActive      bool             `json:"isActive"`
	Score         int              `json:"score"`
	CurrentScore  int              `json:"currentScore"`
	GameState     *model.GameState `json:"gameState,omitempty"`
	StartedAt     time.Time        `json:"startedAt"`
	LastUpdatedAt *time.Time       `json:"lastUpdatedAt,omitempty"`
}

// GameSessionFromModel converts a model.GameSession
func GameSessionFromModel(s *model.GameSession) GameSession {
	return GameSession{
		ID:            string(s.ID),
		UserID:        string(s.UserID),
		Username:      s.Username,
		Mode:          s.Mode,
		IsActive:      s.Active,
		Score:         s.Score,
		CurrentScore:  s.CurrentScore,
		GameState:     s.GameState,
		StartedAt:     s.StartedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// SessionPage is a page of sessions plus the returned count
type SessionPage struct {
	Data  []GameSession `json:"data"`
	Total int           `json:"total"`
}

// NewSessionPage builds a SessionPage from model sessions
func NewSessionPage(sessions []*model.GameSession) SessionPage {
	data := make([]GameSession, len(sessions))
	for i, s := range sessions {
		data[i] = GameSessionFromModel(s)
	}
	return SessionPage{Data: data, Total: len(data)}
}
