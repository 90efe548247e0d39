package tictactoe

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Difficulty selects how the bot picks its moves.
type Difficulty string

const (
	// Easy plays a uniformly random empty cell.
	Easy Difficulty = "easy"
	// Medium wins when it can, blocks when it must, then prefers the centre,
	// the corners and the sides.
	Medium Difficulty = "medium"
	// Hard plays the minimax move and never loses.
	Hard Difficulty = "hard"
)

const centerCell = 4

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")

	cornerCells = []int{0, 2, 6, 8}
	sideCells   = []int{1, 3, 5, 7}
)

// ParseDifficulty - an empty string selects Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	case "":
		return Hard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Strategy picks the next cell for mark.
type Strategy interface {
	NextMove(board Board, mark Mark) (int, error)
}

// NewStrategy - builds the strategy for difficulty. rng is used by the
// randomized strategies; a nil rng is replaced with a randomly seeded one.
func NewStrategy(difficulty Difficulty, rng *rand.Rand) (Strategy, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
	}

	switch difficulty {
	case Easy:
		return &randomStrategy{rng: rng}, nil
	case Medium:
		return &ruleStrategy{rng: rng}, nil
	case Hard:
		return minimaxStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
}

type minimaxStrategy struct{}

func (minimaxStrategy) NextMove(board Board, mark Mark) (int, error) {
	return BestMove(board, mark)
}

type randomStrategy struct {
	rng *rand.Rand
}

func (that *randomStrategy) NextMove(board Board, _ Mark) (int, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return NoMove, ErrNoAvailableMoves
	}

	return cells[that.rng.IntN(len(cells))], nil
}

type ruleStrategy struct {
	rng *rand.Rand
}

func (that *ruleStrategy) NextMove(board Board, mark Mark) (int, error) {
	if !mark.IsPlayer() {
		return NoMove, fmt.Errorf("%w: %d", ErrInvalidMark, mark)
	}

	if board.IsFull() {
		return NoMove, ErrNoAvailableMoves
	}

	if cell, ok := winningCell(board, mark); ok {
		return cell, nil
	}

	if cell, ok := winningCell(board, mark.Opponent()); ok {
		return cell, nil
	}

	if board[centerCell] == EmptyCell {
		return centerCell, nil
	}

	if cell, ok := that.pickEmpty(board, cornerCells); ok {
		return cell, nil
	}

	if cell, ok := that.pickEmpty(board, sideCells); ok {
		return cell, nil
	}

	return NoMove, ErrNoAvailableMoves
}

func (that *ruleStrategy) pickEmpty(board Board, cells []int) (int, bool) {
	available := make([]int, 0, len(cells))
	for _, cell := range cells {
		if board[cell] == EmptyCell {
			available = append(available, cell)
		}
	}

	if len(available) == 0 {
		return NoMove, false
	}

	return available[that.rng.IntN(len(available))], true
}

// winningCell - finds the lowest cell that completes a line for mark.
func winningCell(board Board, mark Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		board[cell] = mark
		won := Evaluate(board).Winner == mark
		board[cell] = EmptyCell

		if won {
			return cell, true
		}
	}

	return NoMove, false
}
