package terminal

import (
	"context"
	"strings"
	"testing"

	"connect4/games"
	"connect4/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, e *games.Engine, input string) string {
	t.Helper()
	var out strings.Builder
	err := Run(context.Background(), logging.Discard(), e, strings.NewReader(input), &out)
	require.NoError(t, err)
	return out.String()
}

func TestRun_PlaysToWin(t *testing.T) {
	e := games.NewStandardGame()

	out := run(t, e, "1\n1\n2\n1\n3\n1\n4\n")

	assert.Equal(t, games.StatusWonBy1, e.Status())
	assert.Contains(t, out, "Player 1")
	assert.Contains(t, out, "won!")
}

func TestRun_RejectsBadInput(t *testing.T) {
	e := games.NewStandardGame()

	out := run(t, e, "abc\n0\n8\n")

	assert.Contains(t, out, "Enter a column number between 1 and 7.")
	assert.Contains(t, out, "Column 0 does not exist.")
	assert.Contains(t, out, "Column 8 does not exist.")
	assert.Zero(t, e.MoveCount())
}

func TestRun_ColumnFull(t *testing.T) {
	e := games.NewStandardGame()

	out := run(t, e, strings.Repeat("4\n", 7))

	assert.Contains(t, out, "Column 4 is full.")
	assert.Equal(t, 6, e.MoveCount())
}

func TestRun_Quit(t *testing.T) {
	e := games.NewStandardGame()

	out := run(t, e, "4\nq\n5\n")

	assert.Contains(t, out, "Bye.")
	assert.Equal(t, 1, e.MoveCount())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, logging.Discard(), games.NewStandardGame(), strings.NewReader("1\n"), &strings.Builder{})
	assert.ErrorIs(t, err, context.Canceled)
}
