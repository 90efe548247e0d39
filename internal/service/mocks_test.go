package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/stretchr/testify/mock"
)

const (
	x = tictactoe.PlayerX
	o = tictactoe.PlayerO
	e = tictactoe.EmptyCell
)

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockStatsRepo struct {
	mock.Mock
}

func (that *mockStatsRepo) Record(ctx context.Context, playerID, result string) error {
	args := that.Called(ctx, playerID, result)
	return args.Error(0)
}

func (that *mockStatsRepo) Get(ctx context.Context, playerID string) (*entity.Statistics, error) {
	args := that.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.Statistics)
	return stats, args.Error(1)
}

func (that *mockStatsRepo) Reset(ctx context.Context, playerID string) error {
	args := that.Called(ctx, playerID)
	return args.Error(0)
}

// gameStore keeps games encoded so every load returns an independent copy.
type gameStore struct {
	mu    sync.Mutex
	games map[string][]byte
}

func newGameStore() *gameStore {
	return &gameStore{games: make(map[string][]byte)}
}

func (that *gameStore) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = data

	return nil
}

func (that *gameStore) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	data, ok := that.games[id]
	that.mu.Unlock()

	if !ok {
		return nil, repository.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *gameStore) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
