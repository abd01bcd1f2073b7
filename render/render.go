// Package render draws boards for terminals.
package render

import (
	"fmt"
	"strings"

	"connect4/games"

	"github.com/charmbracelet/lipgloss"
)

const (
	pieceGlyph = "●"
	emptyGlyph = "·"
)

var (
	player1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Bold(true)
	player2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0c862")).Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	winStyle     = lipgloss.NewStyle().Underline(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))
	frameStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)
)

// Cell renders a single cell.
func Cell(p games.Player) string {
	switch p {
	case games.Player1:
		return player1Style.Render(pieceGlyph)
	case games.Player2:
		return player2Style.Render(pieceGlyph)
	}
	return emptyStyle.Render(emptyGlyph)
}

// PlayerName returns the label for a player with its piece color.
func PlayerName(p games.Player) string {
	return fmt.Sprintf("Player %d %s", int(p), Cell(p))
}

// Board renders the snapshot inside a frame, with 1-based column numbers
// above it. Cells of the winning run are underlined.
func Board(s games.Snapshot) string {
	winning := make(map[games.Position]bool, len(s.WinningRun))
	for _, p := range s.WinningRun {
		winning[p] = true
	}

	var b strings.Builder
	header := make([]string, s.Width)
	for col := range header {
		header[col] = fmt.Sprintf("%d", (col+1)%10)
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))

	for row := 0; row < s.Height; row++ {
		b.WriteByte('\n')
		cells := make([]string, s.Width)
		for col := 0; col < s.Width; col++ {
			cell := Cell(s.Board[row][col])
			if winning[games.Position{Row: row, Column: col}] {
				cell = winStyle.Render(cell)
			}
			cells[col] = cell
		}
		b.WriteString(strings.Join(cells, " "))
	}

	return frameStyle.Render(b.String())
}

// Status describes whose turn it is or how the game ended.
func Status(s games.Snapshot) string {
	switch s.Status {
	case games.StatusDraw:
		return "Tie!"
	case games.StatusWonBy1, games.StatusWonBy2:
		return PlayerName(s.Winner) + " won!"
	}
	return PlayerName(s.ActivePlayer) + " to move"
}
