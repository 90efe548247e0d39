package tictactoe

import (
	"errors"
	"fmt"
	"math"
)

// NoMove is returned together with an error when no cell can be played.
const NoMove = -1

// winScore is the base score of a won leaf. Leaves are shaped by depth so
// that faster wins and slower losses score better.
const winScore = 10

var ErrNoAvailableMoves = errors.New("no available moves")

// BestMove - returns the optimal cell for aiMark using a full minimax search.
// Ties are broken in favour of the lowest cell index. The caller's board is
// never modified.
func BestMove(board Board, aiMark Mark) (int, error) {
	if !aiMark.IsPlayer() {
		return NoMove, fmt.Errorf("%w: %d", ErrInvalidMark, aiMark)
	}

	bestCell := NoMove
	bestScore := math.MinInt

	for cell := range board {
		if board[cell] != EmptyCell {
			continue
		}

		board[cell] = aiMark
		score := minimax(&board, aiMark, 0, false)
		board[cell] = EmptyCell

		if score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	if bestCell == NoMove {
		return NoMove, ErrNoAvailableMoves
	}

	return bestCell, nil
}

// minimax scores the position for aiMark. Every trial placement is undone
// before the next sibling is explored.
func minimax(board *Board, aiMark Mark, depth int, maximizing bool) int {
	switch outcome := Evaluate(*board); {
	case outcome.Status == Win && outcome.Winner == aiMark:
		return winScore - depth
	case outcome.Status == Win:
		return depth - winScore
	case outcome.Status == Draw:
		return 0
	}

	mark, bestScore := aiMark.Opponent(), math.MaxInt
	if maximizing {
		mark, bestScore = aiMark, math.MinInt
	}

	for cell := range board {
		if board[cell] != EmptyCell {
			continue
		}

		board[cell] = mark
		score := minimax(board, aiMark, depth+1, !maximizing)
		board[cell] = EmptyCell

		if maximizing {
			bestScore = max(bestScore, score)
		} else {
			bestScore = min(bestScore, score)
		}
	}

	return bestScore
}
