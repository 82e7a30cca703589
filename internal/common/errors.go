// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Generic request/flow control errors.
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")

	// User account errors.
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrUserDeactivated = errors.New("user deactivated")

	// Auth errors.
	ErrWrongPassword       = errors.New("wrong password")
	ErrNotAdmin            = errors.New("administrator role required")
	ErrInvalidToken        = errors.New("invalid token")
	ErrVerificationFailure = errors.New("verification failed")

	// Game lifecycle errors.
	ErrMaxGames         = errors.New("maximum amount of active games reached")
	ErrIllegalBoardSize = errors.New("board size must be between 8 and 16")
	ErrInvalidPlayers   = errors.New("number of players must be between 2 and 4")
	ErrGameNotActive    = errors.New("game is not active")
	ErrInvalidGame      = errors.New("invalid game")
)
