package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// Mark is the content of a single cell.
type Mark uint8

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

var ErrInvalidMark = errors.New("invalid mark")

// Lines holds the 8 winning triples: rows, columns and diagonals.
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

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark - converts "X", "O" or "" into a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	case "":
		return EmptyCell, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

// Board is the 3x3 grid stored row by row.
type Board [BoardSize]Mark

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells - returns indexes of the empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Board) String() string {
	var sb strings.Builder

	for i, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
		} else {
			sb.WriteString(cell.String())
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
