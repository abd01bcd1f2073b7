package games

// Snapshot is a read-only view of an engine for rendering surfaces.
type Snapshot struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Board        [][]Player `json:"board"`
	ActivePlayer Player     `json:"activePlayer"`
	Status       Status     `json:"status"`
	Winner       Player     `json:"winner,omitempty"`
	MoveCount    int        `json:"moveCount"`
	LastMove     *Position  `json:"lastMove,omitempty"`
	WinningRun   []Position `json:"winningRun,omitempty"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:        e.board.width,
		Height:       e.board.height,
		Board:        e.board.Grid(),
		ActivePlayer: e.active,
		Status:       e.status,
		Winner:       e.status.Winner(),
		MoveCount:    e.moves,
		WinningRun:   e.WinningRun(),
	}
	if last, ok := e.LastMove(); ok {
		s.LastMove = &last
	}
	return s
}
