package games

import "fmt"

// Result describes an accepted move.
type Result struct {
	Outcome    Outcome    `json:"outcome"`
	Row        int        `json:"row"`
	Column     int        `json:"column"`
	NextPlayer Player     `json:"nextPlayer,omitempty"`
	Winner     Player     `json:"winner,omitempty"`
	WinningRun []Position `json:"winningRun,omitempty"`
}

// Engine owns a board and the turn state of one game. It is not safe for
// concurrent use; hosts must serialize calls per engine.
type Engine struct {
	board      *Board
	active     Player
	status     Status
	moves      int
	lastMove   *Position
	winningRun []Position
}

// NewGame creates an engine with an empty width x height board. Player 1
// moves first.
func NewGame(width, height int) (*Engine, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	return &Engine{
		board:  board,
		active: Player1,
		status: StatusInProgress,
	}, nil
}

// NewStandardGame creates a game on the default 7x6 board.
func NewStandardGame() *Engine {
	e, err := NewGame(DefaultWidth, DefaultHeight)
	if err != nil {
		panic(err)
	}
	return e
}

// DropPiece drops the active player's piece into column. A rejected move
// leaves the engine untouched.
func (e *Engine) DropPiece(column int) (Result, error) {
	if e.status.Terminal() {
		return Result{}, ErrGameAlreadyOver
	}
	if column < 0 || column >= e.board.width {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidColumn, column, e.board.width-1)
	}
	row, ok := e.board.LowestEmptyRow(column)
	if !ok {
		return Result{}, fmt.Errorf("%w: column %d", ErrColumnFull, column)
	}
	if err := e.board.Place(row, column, e.active); err != nil {
		return Result{}, err
	}

	e.moves++
	e.lastMove = &Position{Row: row, Column: column}
	result := Result{Row: row, Column: column}

	if run, won := findRunFrom(e.board, row, column, e.active); won {
		e.status = wonBy(e.active)
		e.winningRun = run
		result.Outcome = OutcomeWon
		result.Winner = e.active
		result.WinningRun = run
		return result, nil
	}

	if e.board.IsFull() {
		e.status = StatusDraw
		result.Outcome = OutcomeDraw
		return result, nil
	}

	e.active = e.active.Opponent()
	result.Outcome = OutcomePlaced
	result.NextPlayer = e.active
	return result, nil
}

func (e *Engine) CellOwner(row, column int) Player {
	return e.board.CellOwner(row, column)
}

func (e *Engine) Status() Status {
	return e.status
}

// ActivePlayer returns the player whose move is accepted next. After a win
// it stays on the winner.
func (e *Engine) ActivePlayer() Player {
	return e.active
}

func (e *Engine) Dimensions() (width, height int) {
	return e.board.width, e.board.height
}

func (e *Engine) MoveCount() int {
	return e.moves
}

// LastMove returns the most recently filled cell, if any.
func (e *Engine) LastMove() (Position, bool) {
	if e.lastMove == nil {
		return Position{}, false
	}
	return *e.lastMove, true
}

// WinningRun returns the four cells that decided the game, or nil.
func (e *Engine) WinningRun() []Position {
	return append([]Position(nil), e.winningRun...)
}
