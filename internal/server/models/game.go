package models

import "time"

// GameStatus enumerates the game state machine:
// Active -> Finished, Active -> Aborted (both terminal).
type GameStatus int

const (
	GameActive GameStatus = iota
	GameFinished
	GameAborted
)

const (
	// MinBoardSize and MaxBoardSize bound the (square) board edge length.
	MinBoardSize = 8
	MaxBoardSize = 16

	// MinPlayers and MaxPlayers bound the configured player count.
	MinPlayers = 2
	MaxPlayers = 4

	// MaxActiveGames caps how many Active games a single user may occupy,
	// counting every board they own across all games.
	MaxActiveGames = 3
)

// Game identifies a match. BoardSize and AmountOfPlayers are fixed at
// creation and never change.
type Game struct {
	ID              int64
	Status          GameStatus
	BoardSize       int
	AmountOfPlayers int
	Placing         time.Time
	Started         time.Time
	Finished        time.Time
}
