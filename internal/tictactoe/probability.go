package tictactoe

// Heuristic weights of the live probability estimate. They are tuned by
// hand and are not derived from the game tree.
const (
	// ImmediateThreatWeight is credited for a line with two own marks and one empty cell.
	ImmediateThreatWeight = 1.0
	// LatentThreatWeight is credited for a line with one own mark and two empty cells.
	LatentThreatWeight = 0.2
)

// Probability is a display-only estimate in percent. X, O and Draw sum to 100.
type Probability struct {
	X    float64 `json:"x"`
	O    float64 `json:"o"`
	Draw float64 `json:"draw"`
}

// For - returns the winning percentage of the given mark.
func (that Probability) For(mark Mark) float64 {
	switch mark {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return that.Draw
	}
}

// Estimate - approximates the chances of each side from open lines on the
// board. Finished boards get an exact distribution. Any sideToMove other
// than PlayerX is treated as PlayerO.
//
// The estimate is informational and is never used by the move search.
func Estimate(board Board, sideToMove Mark) Probability {
	switch outcome := Evaluate(board); outcome.Status {
	case Win:
		if outcome.Winner == PlayerX {
			return Probability{X: 100}
		}
		return Probability{O: 100}
	case Draw:
		return Probability{Draw: 100}
	case InProgress:
	}

	var xScore, oScore, totalLines float64

	for _, line := range Lines {
		var xs, os, empty int
		for _, cell := range line {
			switch board[cell] {
			case PlayerX:
				xs++
			case PlayerO:
				os++
			case EmptyCell:
				empty++
			}
		}

		xScore += threatScore(xs, empty)
		oScore += threatScore(os, empty)

		if empty > 0 {
			totalLines++
		}
	}

	denominator := max(totalLines, 1)
	x, o := xScore/denominator, oScore/denominator

	// the side to move acts on its threats first
	if sideToMove == PlayerX {
		o = max(0, o-x)
	} else {
		x = max(0, x-o)
	}

	draw := max(0, 1-x-o)
	sum := x + o + draw

	return Probability{
		X:    x / sum * 100,
		O:    o / sum * 100,
		Draw: draw / sum * 100,
	}
}

func threatScore(own, empty int) float64 {
	switch {
	case own == 2 && empty == 1:
		return ImmediateThreatWeight
	case own == 1 && empty == 2:
		return LatentThreatWeight
	default:
		return 0
	}
}
