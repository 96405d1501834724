package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const BoardSize = 9

// Mark - the content of a cell. Empty is the zero value, X and O are the players' marks.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// Lines - every triple of cells that wins when held by one mark: rows, columns, diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ParseMark - parses "X" or "O", case-insensitive.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "-"
	}
}

// Outcome - classification of a board: a win for one mark, a draw, or an ongoing game.
type Outcome struct {
	Winner Mark
	Draw   bool
}

var (
	Ongoing = Outcome{}
	Draw    = Outcome{Draw: true}
)

func Win(mark Mark) Outcome {
	return Outcome{Winner: mark}
}

func (that Outcome) IsWin() bool {
	return that.Winner != Empty
}

func (that Outcome) IsDraw() bool {
	return that.Draw
}

func (that Outcome) IsOngoing() bool {
	return !that.IsWin() && !that.IsDraw()
}

func (that Outcome) String() string {
	switch {
	case that.IsWin():
		return that.Winner.String() + " WON"
	case that.IsDraw():
		return "Tie"
	default:
		return "ongoing"
	}
}

// Board - 3x3 grid stored row-major: 0,1,2 / 3,4,5 / 6,7,8.
type Board [BoardSize]Mark

// Winner - returns the outcome of the board. Lines are checked rows first, then columns, then diagonals.
func (that *Board) Winner() Outcome {
	for _, line := range Lines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != Empty && a == b && b == c {
			return Win(a)
		}
	}

	if that.IsFull() {
		return Draw
	}

	return Ongoing
}

// AvailableCells - indices of empty cells in ascending order.
func (that *Board) AvailableCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Place - puts the mark into the cell. The board is left untouched when the move is rejected.
func (that *Board) Place(cell int, mark Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return nil
}

// Key - compact form of the board, one character per cell, "." for empty cells.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == Empty {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(cell.String())
	}

	return sb.String()
}

// String - renders the grid, empty cells show their 1-based number.
func (that *Board) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		sb.WriteString("    ")
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if col > 0 {
				sb.WriteByte('|')
			}

			if that[i] == Empty {
				sb.WriteString(strconv.Itoa(i + 1))
			} else {
				sb.WriteString(that[i].String())
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
