// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
)

// RecordGameResult persists the final outcome of a game: the games row is
// marked completed and every player's running score is upserted.
func RecordGameResult(ctx context.Context, gameID uuid.UUID, difficulty models.Difficulty, res game.GameResult) error {
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, status, difficulty, winner, end_time)
			VALUES ($1, 'completed', $2, $3, NOW())
			ON CONFLICT (id) DO UPDATE
			SET status = 'completed', difficulty = $2, winner = $3, end_time = NOW()
		`
		if _, e := tx.Exec(ctx, upsertGame, gameID, string(difficulty), res.Winner); e != nil {
			return e
		}

		q := `
			INSERT INTO game_results (game_id, player_name, score, did_win)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (game_id, player_name)
			DO UPDATE SET score=$3, did_win=$4
		`
		for name, score := range res.Scores {
			if _, e2 := tx.Exec(ctx, q, gameID, name, score, name == res.Winner); e2 != nil {
				return e2
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert game or results: %w", err)
	}
	return nil
}

// StoreFinalGameState updates games.final_game_state with the end-of-game snapshot.
func StoreFinalGameState(ctx context.Context, gameID uuid.UUID, final save.Payload) error {
	jsonData, err := json.Marshal(final)
	if err != nil {
		return fmt.Errorf("failed to marshal final snapshot: %w", err)
	}
	query := `
		UPDATE games
		SET final_game_state = $1
		WHERE id = $2
	`
	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, query, jsonData, gameID)
		return e
	})
	if err != nil {
		return fmt.Errorf("storing final game state in DB: %w", err)
	}
	return nil
}

// GameStatus returns the status column for gameID.
func GameStatus(ctx context.Context, gameID uuid.UUID) (string, error) {
	var status string
	err := DB.QueryRow(ctx, `SELECT status FROM games WHERE id = $1`, gameID).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("reading game %v status: %w", gameID, err)
	}
	return status, nil
}
