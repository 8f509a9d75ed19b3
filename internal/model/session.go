package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// Cell is a board coordinate used by the game state blob
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameState is the free-form snapshot a client reports while playing.
// All fields are optional; absent fields are left untouched on update.
type GameState struct {
	Direction *string `json:"direction,omitempty"`
	Snake     []Cell  `json:"snake,omitempty"`
	Food      *Cell   `json:"food,omitempty"`
	GameOver  *bool   `json:"gameOver,omitempty"`
}

// GameSession is one in-progress-or-ended play-through. Only the owning user
// may mutate it. Ending a session (Active=false) is terminal.
type GameSession struct {
	ID            SessionID
	UserID        UserID
	Username      string
	Mode          string
	Active        bool
	Score         int // final score, frozen on end
	CurrentScore  int
	GameState     *GameState
	StartedAt     time.Time
	LastUpdatedAt *time.Time // absent until the first update
}

// LastActivity returns the most recent activity instant: LastUpdatedAt if the
// session has ever been updated, StartedAt otherwise.
func (s *GameSession) LastActivity() time.Time {
	if s.LastUpdatedAt != nil {
		return *s.LastUpdatedAt
	}
	return s.StartedAt
}

// SessionPatch lists exactly the fields that may be merged into a stored
// session. Nil fields are skipped; this is a patch, not a replace.
type SessionPatch struct {
	CurrentScore *int
	GameState    *GameState
	Score        *int
	Active       *bool
}

// IsEmpty reports whether the patch would change nothing
func (p SessionPatch) IsEmpty() bool {
	return p.CurrentScore == nil && p.GameState == nil && p.Score == nil && p.Active == nil
}

// Apply merges the patch into the session and stamps LastUpdatedAt
func (s *GameSession) Apply(p SessionPatch, now time.Time) {
	if p.CurrentScore != nil {
		s.CurrentScore = *p.CurrentScore
	}
	if p.GameState != nil {
		s.GameState = p.GameState
	}
	if p.Score != nil {
		s.Score = *p.Score
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	s.LastUpdatedAt = &now
}

// EndPatch builds the patch that ends a session: deactivates it and freezes
// both score fields at the final score.
func EndPatch(finalScore int) SessionPatch {
	active := false
	score := finalScore
	current := finalScore
	return SessionPatch{
		Active:       &active,
		Score:        &score,
		CurrentScore: &current,
	}
}
