package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStatsRepository runs the same checks against every backend.
func testStatsRepository(ctx context.Context, t *testing.T, statsRepo StatsRepository) {
	t.Helper()

	// Given: a player without finished games
	stats, err := statsRepo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Statistics{}, stats)

	// When: several results are recorded
	for _, result := range []string{entity.ResultBotWin, entity.ResultDraw, entity.ResultDraw, entity.ResultPlayerWin} {
		require.NoError(t, statsRepo.Record(ctx, "p1", result))
	}
	require.NoError(t, statsRepo.Record(ctx, "p2", entity.ResultBotWin))

	// Then: every counter is updated per player
	stats, err = statsRepo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Statistics{GamesPlayed: 4, PlayerWins: 1, BotWins: 1, Draws: 2}, stats)

	// And: an unknown result is rejected
	err = statsRepo.Record(ctx, "p1", "forfeit")
	require.ErrorIs(t, err, ErrUnknownResult)

	// When: the statistics are reset
	require.NoError(t, statsRepo.Reset(ctx, "p1"))

	// Then: the player starts from zero and others are untouched
	stats, err = statsRepo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Statistics{}, stats)

	stats, err = statsRepo.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, &entity.Statistics{GamesPlayed: 1, BotWins: 1}, stats)
}

func TestRedisStatsRepository(t *testing.T) {
	ctx, st := suite.New(t)

	testStatsRepository(ctx, t, NewRedisStatsRepository(st.Storage))
}

func TestSQLiteStatsRepository(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	testStatsRepository(ctx, t, NewSQLiteStatsRepository(st.Connection))
}
