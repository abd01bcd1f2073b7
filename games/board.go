package games

import "fmt"

// Board is a grid of cells indexed by row (0 is the top) and column.
// It knows nothing about turns or winning.
type Board struct {
	width  int
	height int
	cells  [][]Player
}

// NewBoard creates an empty board. Each dimension must be in 1..MaxDimension.
func NewBoard(width, height int) (*Board, error) {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([][]Player, height)
	for i := range cells {
		cells[i] = make([]Player, width)
	}
	return &Board{width: width, height: height, cells: cells}, nil
}

func (b *Board) Width() int { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) inRange(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// LowestEmptyRow returns the row a piece dropped into col would settle in.
// ok is false when the column is full or out of range.
func (b *Board) LowestEmptyRow(col int) (row int, ok bool) {
	if col < 0 || col >= b.width {
		return -1, false
	}
	for r := b.height - 1; r >= 0; r-- {
		if b.cells[r][col] == Empty {
			return r, true
		}
	}
	return -1, false
}

// Place writes owner into the cell at (row, col). The cell must be the
// lowest empty cell of its column.
func (b *Board) Place(row, col int, owner Player) error {
	if !owner.valid() {
		return fmt.Errorf("%w: owner %d", ErrInvalidPlacement, owner)
	}
	lowest, ok := b.LowestEmptyRow(col)
	if !ok || lowest != row {
		return fmt.Errorf("%w: row %d column %d", ErrInvalidPlacement, row, col)
	}
	b.cells[row][col] = owner
	return nil
}

// CellOwner returns the owner at (row, col), or Empty when out of range.
func (b *Board) CellOwner(row, col int) Player {
	if !b.inRange(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Grid returns a copy of the cells in row-major order.
func (b *Board) Grid() [][]Player {
	grid := make([][]Player, b.height)
	for i, row := range b.cells {
		grid[i] = append([]Player(nil), row...)
	}
	return grid
}
