package games

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawSequence fills a 7x6 board without either player ever owning four in
// a row. The last drop is the 42nd.
var drawSequence = []int{
	5, 3, 2, 3, 1, 5, 3, 1, 0, 1, 4, 1, 2, 5, 0, 5, 6, 6, 2, 0, 6,
	0, 4, 2, 3, 0, 3, 4, 2, 3, 2, 6, 1, 1, 5, 4, 6, 6, 0, 4, 4, 5,
}

// playAll drops into every column in order and returns the last result.
func playAll(t *testing.T, e *Engine, columns ...int) Result {
	t.Helper()
	var last Result
	for i, col := range columns {
		res, err := e.DropPiece(col)
		require.NoError(t, err, "move %d column %d", i, col)
		if i < len(columns)-1 {
			require.Equal(t, OutcomePlaced, res.Outcome, "move %d column %d", i, col)
		}
		last = res
	}
	return last
}

func assertGravity(t *testing.T, b *Board) {
	t.Helper()
	for col := 0; col < b.Width(); col++ {
		for row := 0; row < b.Height()-1; row++ {
			if b.CellOwner(row, col) != Empty {
				assert.NotEqual(t, Empty, b.CellOwner(row+1, col), "floating piece at %d,%d", row, col)
			}
		}
	}
}

func TestNewGame(t *testing.T) {
	e := NewStandardGame()

	w, h := e.Dimensions()
	assert.Equal(t, 7, w)
	assert.Equal(t, 6, h)
	assert.Equal(t, StatusInProgress, e.Status())
	assert.Equal(t, Player1, e.ActivePlayer())
	assert.Zero(t, e.MoveCount())
	_, ok := e.LastMove()
	assert.False(t, ok)
	assert.Nil(t, e.WinningRun())
}

func TestNewGame_InvalidDimensions(t *testing.T) {
	_, err := NewGame(0, 6)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestDropPiece_AlternatesPlayers(t *testing.T) {
	e := NewStandardGame()

	res, err := e.DropPiece(3)
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: OutcomePlaced, Row: 5, Column: 3, NextPlayer: Player2}, res)
	assert.Equal(t, Player1, e.CellOwner(5, 3))
	assert.Equal(t, Player2, e.ActivePlayer())

	res, err = e.DropPiece(3)
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: OutcomePlaced, Row: 4, Column: 3, NextPlayer: Player1}, res)
	assert.Equal(t, Player2, e.CellOwner(4, 3))
	assert.Equal(t, Player1, e.ActivePlayer())

	last, ok := e.LastMove()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 4, Column: 3}, last)
	assert.Equal(t, 2, e.MoveCount())
}

func TestDropPiece_HorizontalWin(t *testing.T) {
	e := NewStandardGame()

	res := playAll(t, e, 0, 0, 1, 0, 2, 0, 3)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, Player1, res.Winner)
	assert.Equal(t, 5, res.Row)
	assert.Equal(t, 3, res.Column)
	assert.Equal(t, []Position{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, res.WinningRun)
	assert.Equal(t, StatusWonBy1, e.Status())
	assert.Equal(t, Player1, e.ActivePlayer(), "winner stays active")
	assert.Equal(t, res.WinningRun, e.WinningRun())
}

func TestDropPiece_VerticalWinByPlayer2(t *testing.T) {
	e := NewStandardGame()

	res := playAll(t, e, 0, 1, 0, 1, 0, 1, 6, 1)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, Player2, res.Winner)
	assert.Equal(t, []Position{{2, 1}, {3, 1}, {4, 1}, {5, 1}}, res.WinningRun)
	assert.Equal(t, StatusWonBy2, e.Status())
	assert.Equal(t, Player2, e.Status().Winner())
}

func TestDropPiece_DiagonalDownRightWin(t *testing.T) {
	e := NewStandardGame()

	res := playAll(t, e, 3, 2, 2, 1, 6, 1, 1, 0, 6, 0, 6, 0, 0)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, Player1, res.Winner)
	assert.Equal(t, []Position{{2, 0}, {3, 1}, {4, 2}, {5, 3}}, res.WinningRun)
}

func TestDropPiece_DiagonalDownLeftWin(t *testing.T) {
	e := NewStandardGame()

	res := playAll(t, e, 0, 1, 1, 2, 6, 2, 2, 3, 6, 3, 6, 3, 3)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, Player1, res.Winner)
	assert.Equal(t, []Position{{2, 3}, {3, 2}, {4, 1}, {5, 0}}, res.WinningRun)
}

func TestDropPiece_Draw(t *testing.T) {
	e := NewStandardGame()

	res := playAll(t, e, drawSequence...)

	assert.Equal(t, OutcomeDraw, res.Outcome)
	assert.Equal(t, 0, res.Row)
	assert.Equal(t, 5, res.Column)
	assert.Equal(t, Empty, res.Winner)
	assert.Equal(t, StatusDraw, e.Status())
	assert.Equal(t, Empty, e.Status().Winner())
	assert.Equal(t, Player2, e.ActivePlayer(), "last mover stays active")
	assert.True(t, e.board.IsFull())
	assert.Equal(t, 42, e.MoveCount())
}

func TestDropPiece_ColumnFull(t *testing.T) {
	e := NewStandardGame()

	for i := 0; i < 6; i++ {
		res, err := e.DropPiece(3)
		require.NoError(t, err)
		assert.Equal(t, 5-i, res.Row)
	}

	before := e.Snapshot()
	_, err := e.DropPiece(3)
	require.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, KindColumnFull, KindOf(err))
	assert.Equal(t, before, e.Snapshot())
}

func TestDropPiece_InvalidColumn(t *testing.T) {
	e := NewStandardGame()
	playAll(t, e, 2)
	before := e.Snapshot()

	for _, col := range []int{-1, 7, 100} {
		_, err := e.DropPiece(col)
		require.ErrorIs(t, err, ErrInvalidColumn, "column %d", col)
		assert.Equal(t, KindInvalidColumn, KindOf(err))
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestDropPiece_GameAlreadyOver(t *testing.T) {
	e := NewStandardGame()
	playAll(t, e, 0, 0, 1, 0, 2, 0, 3)
	before := e.Snapshot()

	for col := -1; col <= 7; col++ {
		_, err := e.DropPiece(col)
		require.ErrorIs(t, err, ErrGameAlreadyOver, "column %d", col)
		assert.Equal(t, KindGameAlreadyOver, KindOf(err))
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestDropPiece_AfterDraw(t *testing.T) {
	e := NewStandardGame()
	playAll(t, e, drawSequence...)

	_, err := e.DropPiece(0)
	assert.ErrorIs(t, err, ErrGameAlreadyOver)
}

func TestDropPiece_SmallBoard(t *testing.T) {
	// No run of four fits on a 3x3 board, so the game always ends in a draw.
	e, err := NewGame(3, 3)
	require.NoError(t, err)

	res := playAll(t, e, 0, 1, 2, 0, 1, 2, 0, 1, 2)
	assert.Equal(t, OutcomeDraw, res.Outcome)
}

func TestKindOf_Unknown(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(ErrInvalidPlacement))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

// Random play-outs compare the localized win check used by DropPiece with a
// scan of the whole board, and check gravity after every move.
func TestDropPiece_RandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := [][2]int{{7, 6}, {4, 4}, {5, 8}, {9, 7}, {1, 6}}

	for game := 0; game < 500; game++ {
		size := sizes[game%len(sizes)]
		e, err := NewGame(size[0], size[1])
		require.NoError(t, err)

		for !e.Status().Terminal() {
			mover := e.ActivePlayer()
			col := rng.Intn(size[0])
			if _, ok := e.board.LowestEmptyRow(col); !ok {
				_, err := e.DropPiece(col)
				require.ErrorIs(t, err, ErrColumnFull)
				continue
			}

			res, err := e.DropPiece(col)
			require.NoError(t, err)
			assertGravity(t, e.board)

			_, local := findRunFrom(e.board, res.Row, res.Column, mover)
			_, full := scanForRun(e.board, mover)
			require.Equal(t, full, local, "game %d move %d", game, e.MoveCount())
			require.Equal(t, full, res.Outcome == OutcomeWon)
			require.False(t, hasWinner(e.board, mover.Opponent()))

			if res.Outcome == OutcomeWon {
				for _, p := range res.WinningRun {
					require.Equal(t, mover, e.CellOwner(p.Row, p.Column))
				}
			}
		}
	}
}
