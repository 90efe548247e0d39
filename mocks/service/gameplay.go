// Package service holds testify mocks of the service interfaces.
package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

// MockGamePlayService is a mock of service.GamePlayService.
type MockGamePlayService struct {
	mock.Mock
}

var _ service.GamePlayService = (*MockGamePlayService)(nil)

// NewMockGamePlayService - creates the mock and asserts its expectations on cleanup.
func NewMockGamePlayService(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockGamePlayService {
	m := &MockGamePlayService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (that *MockGamePlayService) StartGame(ctx context.Context, playerID string, options service.GameOptions) (*entity.Game, error) {
	args := that.Called(ctx, playerID, options)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *MockGamePlayService) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	args := that.Called(ctx, playerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *MockGamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	args := that.Called(ctx, playerID, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *MockGamePlayService) ResetGame(ctx context.Context, playerID string) error {
	args := that.Called(ctx, playerID)
	return args.Error(0)
}

func (that *MockGamePlayService) Probability(ctx context.Context, playerID string) (*service.Probability, error) {
	args := that.Called(ctx, playerID)
	probability, _ := args.Get(0).(*service.Probability)
	return probability, args.Error(1)
}

func (that *MockGamePlayService) GetStatistics(ctx context.Context, playerID string) (*entity.Statistics, error) {
	args := that.Called(ctx, playerID)
	stats, _ := args.Get(0).(*entity.Statistics)
	return stats, args.Error(1)
}

func (that *MockGamePlayService) ResetStatistics(ctx context.Context, playerID string) error {
	args := that.Called(ctx, playerID)
	return args.Error(0)
}
