package games

// Position is a cell coordinate on a board.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type direction struct {
	dRow, dCol int
}

// Horizontal, vertical, diagonal down-right and diagonal down-left.
var directions = [...]direction{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// runAt returns the WinLength cells starting at (row, col) stepping in d,
// if all of them belong to p.
func runAt(b *Board, row, col int, d direction, p Player) ([]Position, bool) {
	run := make([]Position, 0, WinLength)
	for i := 0; i < WinLength; i++ {
		r, c := row+i*d.dRow, col+i*d.dCol
		if b.CellOwner(r, c) != p {
			return nil, false
		}
		run = append(run, Position{Row: r, Column: c})
	}
	return run, true
}

// scanForRun checks every cell of the board for a winning run owned by p.
func scanForRun(b *Board, p Player) ([]Position, bool) {
	if !p.valid() {
		return nil, false
	}
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			for _, d := range directions {
				if run, ok := runAt(b, row, col, d, p); ok {
					return run, true
				}
			}
		}
	}
	return nil, false
}

// countConsecutive counts cells owned by p from (row, col) stepping by
// (dRow, dCol), the starting cell included.
func countConsecutive(b *Board, row, col, dRow, dCol int, p Player) int {
	count := 0
	for b.CellOwner(row, col) == p {
		count++
		row += dRow
		col += dCol
	}
	return count
}

// findRunFrom checks only the four lines through (row, col). It finds a run
// whenever scanForRun would, provided the board had no run for p before the
// piece at (row, col) was placed.
func findRunFrom(b *Board, row, col int, p Player) ([]Position, bool) {
	if !p.valid() || b.CellOwner(row, col) != p {
		return nil, false
	}
	for _, d := range directions {
		back := countConsecutive(b, row, col, -d.dRow, -d.dCol, p)
		forward := countConsecutive(b, row, col, d.dRow, d.dCol, p)
		if back+forward-1 < WinLength {
			continue
		}
		startRow := row - (back-1)*d.dRow
		startCol := col - (back-1)*d.dCol
		return runAt(b, startRow, startCol, d, p)
	}
	return nil, false
}

// hasWinner reports whether p owns any winning run on b.
func hasWinner(b *Board, p Player) bool {
	_, ok := scanForRun(b, p)
	return ok
}
