package games

const (
	DefaultWidth  = 7
	DefaultHeight = 6

	// WinLength is the number of consecutive same-owner cells that wins.
	WinLength = 4

	// MaxDimension bounds the width and height of a board.
	MaxDimension = 64
)

// Player identifies the owner of a cell. Empty marks an unoccupied cell.
type Player int

const (
	Empty Player = iota
	Player1
	Player2
)

// Opponent returns the other player. Empty has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p Player) valid() bool {
	return p == Player1 || p == Player2
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWonBy1     Status = "won_by_1"
	StatusWonBy2     Status = "won_by_2"
	StatusDraw       Status = "draw"
)

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Winner returns the winning player, or Empty for a draw or a game in progress.
func (s Status) Winner() Player {
	switch s {
	case StatusWonBy1:
		return Player1
	case StatusWonBy2:
		return Player2
	}
	return Empty
}

func wonBy(p Player) Status {
	if p == Player1 {
		return StatusWonBy1
	}
	return StatusWonBy2
}

// Outcome describes what an accepted move did to the game.
type Outcome string

const (
	OutcomePlaced Outcome = "placed"
	OutcomeWon    Outcome = "won"
	OutcomeDraw   Outcome = "draw"
)
