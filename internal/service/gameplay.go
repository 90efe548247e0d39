package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// GameOptions configure a new game. Empty fields fall back to a random
// first mover and the configured difficulty.
type GameOptions struct {
	First      string `json:"first,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Probability is the live estimate from the player's point of view, in percent.
type Probability struct {
	Player float64 `json:"player"`
	Bot    float64 `json:"bot"`
	Draw   float64 `json:"draw"`
}

type GamePlayService interface {
	StartGame(ctx context.Context, playerID string, options GameOptions) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) error

	Probability(ctx context.Context, playerID string) (*Probability, error)

	GetStatistics(ctx context.Context, playerID string) (*entity.Statistics, error)
	ResetStatistics(ctx context.Context, playerID string) error
}

type statsRepo interface {
	Record(ctx context.Context, playerID, result string) error
	Get(ctx context.Context, playerID string) (*entity.Statistics, error)
	Reset(ctx context.Context, playerID string) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
	statsRepo     statsRepo

	defaultDifficulty tictactoe.Difficulty

	locks *playerLocks
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	botService BotService,
	statsRepo statsRepo,
	defaultDifficulty tictactoe.Difficulty,
) GamePlayService {
	return &gamePlayService{
		logger:            logger.With("component", "gameplay"),
		playerService:     playerService,
		gameService:       gameService,
		botService:        botService,
		statsRepo:         statsRepo,
		defaultDifficulty: defaultDifficulty,
		locks:             newPlayerLocks(),
	}
}

// StartGame - drops the current game of the player without recording it and
// starts a new one. The bot moves right away when it holds X.
func (that *gamePlayService) StartGame(ctx context.Context, playerID string, options GameOptions) (*entity.Game, error) {
	log := that.logger.With("method", "StartGame", "playerID", playerID)

	unlock := that.locks.lock(playerID)
	defer unlock()

	playerMark, _, err := entity.MarksFor(options.First)
	if err != nil {
		return nil, err
	}

	difficulty := that.defaultDifficulty
	if options.Difficulty != "" {
		if difficulty, err = tictactoe.ParseDifficulty(options.Difficulty); err != nil {
			return nil, err
		}
	}

	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.GameID != "" {
		that.dropGame(ctx, player.GameID)
	}

	game, err := that.gameService.CreateGame(ctx, playerMark, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to open the game: %w", err)
		}

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
	}

	player.GameID = game.ID
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info("game started", "gameID", game.ID, "playerMark", game.PlayerMark, "difficulty", game.Difficulty)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// MakeTurn - plays the player's move and answers with the bot's move. The
// result is recorded once, by the move that finishes the game. Turns of the
// same player are serialized.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	unlock := that.locks.lock(playerID)
	defer unlock()

	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(game.PlayerMark, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		result := game.Result()
		// The game is already saved as finished.
		if err = that.statsRepo.Record(ctx, player.ID, result); err != nil {
			log.Error("failed to record result", "gameID", game.ID, "result", result, "error", err)
		}

		metrics.GameFinished(result)
		log.Info("game finished", "gameID", game.ID, "result", result)
	}

	return game, nil
}

// ResetGame - drops the current game without recording a result.
func (that *gamePlayService) ResetGame(ctx context.Context, playerID string) error {
	unlock := that.locks.lock(playerID)
	defer unlock()

	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return err
	}

	if err = that.gameService.DeleteGame(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	player.GameID = ""
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *gamePlayService) Probability(ctx context.Context, playerID string) (*Probability, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return ProbabilityOf(game), nil
}

// ProbabilityOf - maps the board estimate to the player and the bot.
func ProbabilityOf(game *entity.Game) *Probability {
	estimate := tictactoe.Estimate(game.Board, game.Turn)

	return &Probability{
		Player: estimate.For(game.PlayerMark),
		Bot:    estimate.For(game.BotMark),
		Draw:   estimate.Draw,
	}
}

func (that *gamePlayService) GetStatistics(ctx context.Context, playerID string) (*entity.Statistics, error) {
	stats, err := that.statsRepo.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	return stats, nil
}

func (that *gamePlayService) ResetStatistics(ctx context.Context, playerID string) error {
	if err := that.statsRepo.Reset(ctx, playerID); err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}

	return nil
}

// activeGame - returns the player and the game attached to it.
func (that *gamePlayService) activeGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveGame
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, nil, apperror.ErrNoActiveGame
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return player, game, nil
}

func (that *gamePlayService) dropGame(ctx context.Context, gameID string) {
	log := that.logger.With("method", "dropGame", "gameID", gameID)

	err := that.gameService.DeleteGame(ctx, gameID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game dropped")
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

// playerLocks - one mutex per player, dropped once nobody holds or waits for it.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*playerLock
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: make(map[string]*playerLock)}
}

func (that *playerLocks) lock(playerID string) func() {
	that.mu.Lock()
	l, ok := that.locks[playerID]
	if !ok {
		l = &playerLock{}
		that.locks[playerID] = l
	}
	l.refs++
	that.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, playerID)
		}
		that.mu.Unlock()
	}
}
