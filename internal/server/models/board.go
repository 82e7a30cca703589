package models

// BoardStatus enumerates the per-player state machine:
// Placing -> Shooting -> Waiting -> {Won | Lost}.
type BoardStatus int

const (
	BoardPlacing BoardStatus = iota
	BoardShooting
	BoardWaiting
	BoardWon
	BoardLost
)

// Board is one player's per-game state. PlayerID is the 1-based slot number
// assigned in join order; at most one board exists per (game, user) pair.
type Board struct {
	GameID     int64
	UserName   string
	PlayerID   int
	Status     BoardStatus
	ShotsFired int
	ShotsMap   ShotMap
	Score      int
}

// ShotMap records which cells of the opponent grid have been fired upon,
// one bit per cell, row-major, most significant bit first within each byte.
// A board of edge length s needs ceil(s*s/8) bytes. The byte layout is the
// storage format, so the bit order must not change.
type ShotMap []byte

// NewShotMap returns an all-zero map for a size x size board.
func NewShotMap(size int) ShotMap {
	return make(ShotMap, (size*size+7)/8)
}

// Mark records a shot at the given cell. Row and col are 0-based; size is
// the board edge length the map was created with.
func (m ShotMap) Mark(size, row, col int) {
	i := row*size + col
	m[i/8] |= 1 << (7 - uint(i%8))
}

// Fired reports whether the given cell has been fired upon.
func (m ShotMap) Fired(size, row, col int) bool {
	i := row*size + col
	return m[i/8]&(1<<(7-uint(i%8))) != 0
}
