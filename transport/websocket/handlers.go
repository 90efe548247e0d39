package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/status"
)

func (that *Server) handleNewGame(ctx context.Context, playerID string, request Request) (Response, error) {
	game, err := that.gamePlay.StartGame(ctx, playerID, service.GameOptions{
		First:      request.First,
		Difficulty: request.Difficulty,
	})
	if err != nil {
		return Response{}, err
	}

	return gameResponse(game), nil
}

func (that *Server) handleGameTurn(ctx context.Context, playerID string, request Request) (Response, error) {
	if request.Cell == nil {
		return Response{}, fmt.Errorf("%w: cell is required", status.ErrInvalidRequest)
	}

	game, err := that.gamePlay.MakeTurn(ctx, playerID, *request.Cell)
	if err != nil {
		return Response{}, err
	}

	return gameResponse(game), nil
}

func (that *Server) handleGameReset(ctx context.Context, playerID string, _ Request) (Response, error) {
	if err := that.gamePlay.ResetGame(ctx, playerID); err != nil {
		return Response{}, err
	}

	return Response{}, nil
}

func (that *Server) handleGameGet(ctx context.Context, playerID string, _ Request) (Response, error) {
	game, err := that.gamePlay.GetGame(ctx, playerID)
	if err != nil {
		return Response{}, err
	}

	return gameResponse(game), nil
}

func (that *Server) handleStatsGet(ctx context.Context, playerID string, _ Request) (Response, error) {
	stats, err := that.gamePlay.GetStatistics(ctx, playerID)
	if err != nil {
		return Response{}, err
	}

	return Response{Statistics: stats}, nil
}

func (that *Server) handleStatsReset(ctx context.Context, playerID string, _ Request) (Response, error) {
	if err := that.gamePlay.ResetStatistics(ctx, playerID); err != nil {
		return Response{}, err
	}

	return Response{}, nil
}
