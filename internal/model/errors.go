package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session has ended")
	ErrNotSessionOwner = errors.New("not the session owner")

	// Leaderboard errors
	ErrEntryNotFound = errors.New("leaderboard entry not found")
)
