package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	logger     *slog.Logger
	thinkDelay time.Duration
}

// NewBotService - thinkDelay pauses before every bot move; zero disables it.
func NewBotService(logger *slog.Logger, thinkDelay time.Duration) BotService {
	return &botService{
		logger:     logger.With("component", "bot"),
		thinkDelay: thinkDelay,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if !game.IsBotTurn() {
		return ErrNotBotTurn
	}

	if err := that.think(ctx); err != nil {
		return err
	}

	difficulty, err := tictactoe.ParseDifficulty(string(game.Difficulty))
	if err != nil {
		return fmt.Errorf("failed to parse difficulty: %w", err)
	}

	strategy, err := tictactoe.NewStrategy(difficulty, nil)
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}

	started := time.Now()
	cell, err := strategy.NextMove(game.Board, game.BotMark)
	if err != nil {
		return fmt.Errorf("failed to choose a move: %w", err)
	}

	metrics.ObserveBotMove(string(difficulty), time.Since(started))

	if err = game.MakeTurn(game.BotMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made a turn", "cell", cell, "difficulty", difficulty)

	return nil
}

func (that *botService) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
