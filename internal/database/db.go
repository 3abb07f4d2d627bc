package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

// ConnectDB opens the global pool for connStr and pings it.
func ConnectDB(ctx context.Context, connStr string) error {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("db ping error: %w", err)
	}

	DB = pool
	return nil
}

// Close releases the global pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id               UUID PRIMARY KEY,
	status           TEXT NOT NULL DEFAULT 'in_progress',
	difficulty       TEXT,
	winner           TEXT,
	start_time       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time         TIMESTAMPTZ,
	final_game_state JSONB
);

CREATE TABLE IF NOT EXISTS game_results (
	game_id     UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	player_name TEXT NOT NULL,
	score       INTEGER NOT NULL,
	did_win     BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, player_name)
);

CREATE TABLE IF NOT EXISTS game_events (
	game_id      UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	session_id   UUID NOT NULL,
	action_index INTEGER NOT NULL,
	action_type  TEXT NOT NULL,
	player_name  TEXT,
	payload      JSONB,
	occurred_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (game_id, session_id, action_index)
);
`

// EnsureSchema creates the tables used by the historian and result recording.
func EnsureSchema(ctx context.Context) error {
	if _, err := DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
