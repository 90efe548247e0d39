package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	ResultPlayerWin = "player"
	ResultBotWin    = "bot"
	ResultDraw      = "draw"
)

const (
	FirstPlayer = "player"
	FirstBot    = "bot"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrUnknownFirstMover = errors.New("unknown first mover")
)

// Game is a single match between the human player and the bot.
type Game struct {
	ID         string               `json:"id"`
	Board      tictactoe.Board      `json:"board"`
	Turn       tictactoe.Mark       `json:"player_turn"`
	PlayerMark tictactoe.Mark       `json:"player_mark"`
	BotMark    tictactoe.Mark       `json:"bot_mark"`
	Difficulty tictactoe.Difficulty `json:"difficulty"`
	Winner     tictactoe.Mark       `json:"winner"`
	Status     string               `json:"status"`
}

// NewGame - creates an ongoing game. X always moves first.
func NewGame(id string, playerMark tictactoe.Mark, difficulty tictactoe.Difficulty) *Game {
	return &Game{
		ID:         id,
		Turn:       tictactoe.PlayerX,
		PlayerMark: playerMark,
		BotMark:    playerMark.Opponent(),
		Difficulty: difficulty,
		Status:     StatusOngoing,
	}
}

// MarksFor - returns player and bot marks for the requested first mover.
// An empty value assigns the marks at random.
func MarksFor(first string) (tictactoe.Mark, tictactoe.Mark, error) {
	switch first {
	case FirstPlayer:
		return tictactoe.PlayerX, tictactoe.PlayerO, nil
	case FirstBot:
		return tictactoe.PlayerO, tictactoe.PlayerX, nil
	case "":
		playerMark, botMark := GetRandomMarks()
		return playerMark, botMark, nil
	default:
		return tictactoe.EmptyCell, tictactoe.EmptyCell, fmt.Errorf("%w: %q", ErrUnknownFirstMover, first)
	}
}

func GetRandomMarks() (tictactoe.Mark, tictactoe.Mark) {
	if rand.IntN(2) == 0 { //nolint: gosec // it's ok
		return tictactoe.PlayerX, tictactoe.PlayerO
	}
	return tictactoe.PlayerO, tictactoe.PlayerX
}

func (that *Game) UpdateGameState() {
	switch outcome := tictactoe.Evaluate(that.Board); outcome.Status {
	case tictactoe.Win:
		that.Winner = outcome.Winner
		that.Status = StatusFinished
		that.Turn = tictactoe.EmptyCell
	case tictactoe.Draw:
		that.Winner = tictactoe.EmptyCell
		that.Status = StatusFinished
		that.Turn = tictactoe.EmptyCell
	case tictactoe.InProgress:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(mark tictactoe.Mark, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if !tictactoe.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != tictactoe.EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark
	that.Turn = mark.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Result - returns the outcome from the player's point of view, or an empty
// string while the game is ongoing.
func (that *Game) Result() string {
	if !that.IsFinished() {
		return ""
	}

	switch that.Winner {
	case tictactoe.EmptyCell:
		return ResultDraw
	case that.PlayerMark:
		return ResultPlayerWin
	case that.BotMark:
		return ResultBotWin
	default:
		return ResultDraw
	}
}
