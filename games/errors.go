package games

import "errors"

var (
	ErrInvalidColumn     = errors.New("invalid column")
	ErrColumnFull        = errors.New("column is full")
	ErrGameAlreadyOver   = errors.New("game is already over")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidPlacement  = errors.New("invalid placement")
)

// ErrorKind is the wire name of a rejected move.
type ErrorKind string

const (
	KindInvalidColumn   ErrorKind = "InvalidColumn"
	KindColumnFull      ErrorKind = "ColumnFull"
	KindGameAlreadyOver ErrorKind = "GameAlreadyOver"
	KindUnknown         ErrorKind = "Unknown"
)

// KindOf maps a DropPiece error to its ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidColumn):
		return KindInvalidColumn
	case errors.Is(err, ErrColumnFull):
		return KindColumnFull
	case errors.Is(err, ErrGameAlreadyOver):
		return KindGameAlreadyOver
	}
	return KindUnknown
}
