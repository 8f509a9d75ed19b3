package request

import "github.com/neonsnake/neonsnake-backend/internal/model"

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitScoreRequest is the request body for submitting a leaderboard score
type SubmitScoreRequest struct {
	Score    *int   `json:"score"`
	Mode     string `json:"mode"`
	Duration *int   `json:"duration,omitempty"`
}

// StartSessionRequest is the request body for starting a game session
type StartSessionRequest struct {
	Mode string `json:"mode"`
}

// EndSessionRequest is the request body for ending a game session
type EndSessionRequest struct {
	FinalScore *int `json:"finalScore"`
}

// UpdateSessionRequest is the request body for patching a live session.
// Absent fields are left untouched.
type UpdateSessionRequest struct {
	CurrentScore *int             `json:"currentScore,omitempty"`
	GameState    *model.GameState `json:"gameState,omitempty"`
}
