package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type Storage struct {
	Connection *sql.DB
}

// NewSQLiteStorage - opens the database file, creating its directory when missing.
func NewSQLiteStorage(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("can't create storage directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init - creates the statistics table.
func (that *Storage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS statistics (
		player_id    TEXT PRIMARY KEY,
		games_played INTEGER NOT NULL DEFAULT 0,
		player_wins  INTEGER NOT NULL DEFAULT 0,
		bot_wins     INTEGER NOT NULL DEFAULT 0,
		draws        INTEGER NOT NULL DEFAULT 0
	)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
