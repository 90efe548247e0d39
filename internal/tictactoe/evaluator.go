package tictactoe

// Status of a board position.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

func (that Status) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the result of evaluating a board. Winner is set only when Status is Win.
type Outcome struct {
	Status Status
	Winner Mark
}

func (that Outcome) IsTerminal() bool {
	return that.Status != InProgress
}

// Evaluate - reports the winner, a draw or a game still in progress.
func Evaluate(board Board) Outcome {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: Win, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return Outcome{Status: InProgress}
	}

	return Outcome{Status: Draw}
}
