// Package terminal plays a hot-seat game on a terminal: both players take
// turns typing column numbers into the same input.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"connect4/games"
	"connect4/render"
)

// Run drives e until the game ends, the input is exhausted or the player
// quits with "q".
func Run(ctx context.Context, logger *slog.Logger, e *games.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	width, _ := e.Dimensions()

	fmt.Fprintln(out, render.Board(e.Snapshot()))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap := e.Snapshot()
		if snap.Status.Terminal() {
			fmt.Fprintln(out, render.Status(snap))
			logger.Info("game over", "status", snap.Status, "moves", snap.MoveCount)
			return nil
		}

		fmt.Fprintf(out, "%s. Column (1-%d, q to quit): ", render.PlayerName(snap.ActivePlayer), width)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "q") {
			fmt.Fprintln(out, "Bye.")
			return nil
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(out, "Enter a column number between 1 and %d.\n", width)
			continue
		}

		result, err := e.DropPiece(n - 1)
		if err != nil {
			logger.Debug("move rejected", "column", n-1, "err", err)
			switch games.KindOf(err) {
			case games.KindInvalidColumn:
				fmt.Fprintf(out, "Column %d does not exist.\n", n)
			case games.KindColumnFull:
				fmt.Fprintf(out, "Column %d is full.\n", n)
			default:
				return err
			}
			continue
		}

		logger.Debug("move applied", "column", result.Column, "row", result.Row, "outcome", result.Outcome)
		fmt.Fprintln(out, render.Board(e.Snapshot()))
	}
}
