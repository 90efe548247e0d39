package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrUnknownResult = errors.New("unknown game result")

const (
	fieldGamesPlayed = "games_played"
	fieldPlayerWins  = "player_wins"
	fieldBotWins     = "bot_wins"
	fieldDraws       = "draws"
)

// StatsRepository keeps the finished games of every player.
type StatsRepository interface {
	Record(ctx context.Context, playerID, result string) error
	Get(ctx context.Context, playerID string) (*entity.Statistics, error)
	Reset(ctx context.Context, playerID string) error
}

func resultField(result string) (string, error) {
	switch result {
	case entity.ResultPlayerWin:
		return fieldPlayerWins, nil
	case entity.ResultBotWin:
		return fieldBotWins, nil
	case entity.ResultDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResult, result)
	}
}

type redisStats struct {
	client *redis.Client
}

// NewRedisStatsRepository - stores statistics in a hash per player.
func NewRedisStatsRepository(client *redis.Client) StatsRepository {
	return &redisStats{
		client: client,
	}
}

func statsKey(playerID string) string {
	return "stats:" + playerID
}

func (that *redisStats) Record(ctx context.Context, playerID, result string) error {
	field, err := resultField(result)
	if err != nil {
		return err
	}

	key := statsKey(playerID)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, fieldGamesPlayed, 1)
		pipe.HIncrBy(ctx, key, field, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *redisStats) Get(ctx context.Context, playerID string) (*entity.Statistics, error) {
	values, err := that.client.HGetAll(ctx, statsKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	stats := &entity.Statistics{}
	targets := map[string]*int64{
		fieldGamesPlayed: &stats.GamesPlayed,
		fieldPlayerWins:  &stats.PlayerWins,
		fieldBotWins:     &stats.BotWins,
		fieldDraws:       &stats.Draws,
	}

	for field, target := range targets {
		raw, ok := values[field]
		if !ok {
			continue
		}

		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}

		*target = value
	}

	return stats, nil
}

func (that *redisStats) Reset(ctx context.Context, playerID string) error {
	if err := that.client.Del(ctx, statsKey(playerID)).Err(); err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}

	return nil
}
