package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/game"
)

// InsertEvents writes a batch of journal records in a single transaction.
// A game_end record marks its game completed.
func InsertEvents(ctx context.Context, records []cache.EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertEventTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insert event %v/%v/%d: %w", rec.GameID, rec.SessionID, rec.ActionIndex, err)
			}
		}
		return nil
	})
}

func insertEventTx(ctx context.Context, tx pgx.Tx, rec cache.EventRecord) error {
	upsertGameQ := `
		INSERT INTO games (id, status, start_time)
		VALUES ($1, 'in_progress', $2)
		ON CONFLICT (id) DO NOTHING
	`
	occurred := time.UnixMilli(rec.Timestamp)
	if _, err := tx.Exec(ctx, upsertGameQ, rec.GameID, occurred); err != nil {
		return err
	}

	var payload []byte
	if rec.Payload != nil {
		var err error
		if payload, err = json.Marshal(rec.Payload); err != nil {
			return err
		}
	}
	insertQ := `
		INSERT INTO game_events (game_id, session_id, action_index, action_type, player_name, payload, occurred_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		ON CONFLICT (game_id, session_id, action_index) DO NOTHING
	`
	if _, err := tx.Exec(ctx, insertQ, rec.GameID, rec.SessionID, rec.ActionIndex, rec.ActionType, rec.Player, payload, occurred); err != nil {
		return err
	}

	if rec.ActionType == string(game.EventGameEnd) {
		finalizeQ := `
			UPDATE games
			SET status = 'completed', winner = NULLIF($2, ''), end_time = $3
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, finalizeQ, rec.GameID, rec.Player, occurred); err != nil {
			return err
		}
	}
	return nil
}

// CountEvents returns how many events are stored for gameID.
func CountEvents(ctx context.Context, gameID uuid.UUID) (int, error) {
	var n int
	err := DB.QueryRow(ctx, `SELECT COUNT(*) FROM game_events WHERE game_id = $1`, gameID).Scan(&n)
	return n, err
}
