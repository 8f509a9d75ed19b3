package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account. Accounts are immutable after signup.
type User struct {
	ID           UserID
	Username     string // 3-30 chars, unique
	Email        string // unique
	PasswordHash string // bcrypt hash, never serialized outward
	CreatedAt    time.Time
}
