package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case LeaderboardEntry:
		o.printEntry(v)
	case LeaderboardPage:
		o.printLeaderboard(v)
	case Session:
		o.printSession(v)
	case SessionPage:
		o.printSessions(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LeaderboardEntry response type
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

// LeaderboardPage response type
type LeaderboardPage struct {
	Data  []LeaderboardEntry `json:"data"`
	Total int                `json:"total"`
}

// Session response type
type Session struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Username      string     `json:"username"`
	Mode          string     `json:"mode"`
	IsActive      bool       `json:"isActive"`
	Score         int        `json:"score"`
	CurrentScore  int        `json:"currentScore"`
	StartedAt     time.Time  `json:"startedAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
}

// SessionPage response type
type SessionPage struct {
	Data  []Session `json:"data"`
	Total int       `json:"total"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Created: %s\n", u.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printEntry(e LeaderboardEntry) {
	fmt.Printf("#%d  %s  %d points (%s)\n", e.Rank, e.Username, e.Score, e.Mode)
	if e.Duration != nil {
		fmt.Printf("Duration: %ds\n", *e.Duration)
	}
	fmt.Printf("Submitted: %s\n", e.Timestamp.Format(time.RFC3339))
}

func (o *Output) printLeaderboard(p LeaderboardPage) {
	fmt.Printf("Leaderboard (%d total):\n", p.Total)
	for _, e := range p.Data {
		fmt.Printf("  #%-4d %-20s %8d  %s\n", e.Rank, e.Username, e.Score, e.Mode)
	}
}

func (o *Output) printSession(s Session) {
	activeStr := "ended"
	if s.IsActive {
		activeStr = "active"
	}
	fmt.Printf("Session: %s (%s)\n", s.ID, activeStr)
	fmt.Printf("Player: %s\n", s.Username)
	fmt.Printf("Mode: %s\n", s.Mode)
	fmt.Printf("Score: %d (current: %d)\n", s.Score, s.CurrentScore)
	fmt.Printf("Started: %s\n", s.StartedAt.Format(time.RFC3339))
	if s.LastUpdatedAt != nil {
		fmt.Printf("Updated: %s\n", s.LastUpdatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printSessions(p SessionPage) {
	fmt.Printf("Active sessions (%d):\n", p.Total)
	for _, s := range p.Data {
		fmt.Printf("  %s  %-20s %8d  %s\n", s.ID, s.Username, s.CurrentScore, s.Mode)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
