package model

import "time"

// EntryID uniquely identifies a leaderboard entry
type EntryID string

// LeaderboardEntry is one recorded score submission. Entries are append-only:
// once created they are never mutated or deleted, except for Rank, which is
// reassigned across the whole board every time a new entry is added.
type LeaderboardEntry struct {
	ID          EntryID
	UserID      UserID
	Username    string // captured at submission time, not live-linked
	Score       int    // >= 0
	Mode        string // game-variant label, e.g. "walls" / "passthrough"
	Duration    *int   // seconds, optional
	SubmittedAt time.Time
	Rank        int // 1-based position in the score-descending order
}
