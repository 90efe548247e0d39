package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ai/transport/websocket"
)

var (
	ErrAddrNotFound        = errors.New("redis address string is empty")
	ErrUnknownStatsBackend = errors.New("unknown statistics backend")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	difficulty, err := tictactoe.ParseDifficulty(conf.Bot.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid bot difficulty: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	statsRepo, closeStats, err := newStatsRepository(ctx, conf, redisStorage)
	if err != nil {
		return err
	}
	defer closeStats()

	playerRepo := repository.NewPlayerRepository(redisStorage)
	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.GameTTL)

	gamePlay := service.NewGamePlayService(
		logger,
		service.NewPlayerService(playerRepo),
		service.NewGameService(gameRepo),
		service.NewBotService(logger, conf.Bot.ThinkDelay),
		statsRepo,
		difficulty,
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gamePlay).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gamePlay).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newStatsRepository - picks the statistics backend. The returned func
// releases the backend's own resources.
func newStatsRepository(ctx context.Context, conf *config.Config, client *redis.Client) (repository.StatsRepository, func(), error) {
	switch conf.StatsBackend {
	case config.StatsBackendRedis:
		return repository.NewRedisStatsRepository(client), func() {}, nil
	case config.StatsBackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteStatsRepository(sqliteStorage.Connection), func() { _ = sqliteStorage.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStatsBackend, conf.StatsBackend)
	}
}
