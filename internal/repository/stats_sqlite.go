package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type sqliteStats struct {
	conn *sql.DB
}

// NewSQLiteStatsRepository - the statistics table must exist, see storage.Storage.Init.
func NewSQLiteStatsRepository(conn *sql.DB) StatsRepository {
	return &sqliteStats{
		conn: conn,
	}
}

func (that *sqliteStats) Record(ctx context.Context, playerID, result string) error {
	field, err := resultField(result)
	if err != nil {
		return err
	}

	// field comes from a fixed set of column names
	query := fmt.Sprintf(`INSERT INTO statistics (player_id, games_played, %[1]s) VALUES (?, 1, 1)
		ON CONFLICT(player_id) DO UPDATE SET games_played = games_played + 1, %[1]s = %[1]s + 1`, field)

	if _, err = that.conn.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("can't record result: %w", err)
	}

	return nil
}

func (that *sqliteStats) Get(ctx context.Context, playerID string) (*entity.Statistics, error) {
	query := `SELECT games_played, player_wins, bot_wins, draws FROM statistics WHERE player_id = ?`

	var stats entity.Statistics

	err := that.conn.QueryRowContext(ctx, query, playerID).
		Scan(&stats.GamesPlayed, &stats.PlayerWins, &stats.BotWins, &stats.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Statistics{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get statistics: %w", err)
	}

	return &stats, nil
}

func (that *sqliteStats) Reset(ctx context.Context, playerID string) error {
	query := `DELETE FROM statistics WHERE player_id = ?`

	if _, err := that.conn.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("can't reset statistics: %w", err)
	}

	return nil
}
