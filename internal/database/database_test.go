package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTestDB needs a scratch Postgres in DATABASE_URL.
func connectTestDB(t *testing.T) context.Context {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, ConnectDB(ctx, url))
	t.Cleanup(Close)
	require.NoError(t, EnsureSchema(ctx))
	return ctx
}

func TestInsertEventsFinalizesGame(t *testing.T) {
	ctx := connectTestDB(t)
	gameID := uuid.New()
	now := time.Now().UnixMilli()

	records := []cache.EventRecord{
		{GameID: gameID, ActionIndex: 0, ActionType: string(game.EventGameStart), Timestamp: now},
		{GameID: gameID, ActionIndex: 1, ActionType: string(game.EventPlayerPlayCard), Player: "Player",
			Payload: map[string]interface{}{"handSize": 0}, Timestamp: now + 1},
	}
	require.NoError(t, InsertEvents(ctx, records))

	status, err := GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", status)

	require.NoError(t, InsertEvents(ctx, []cache.EventRecord{
		{GameID: gameID, ActionIndex: 2, ActionType: string(game.EventGameEnd), Player: "Player", Timestamp: now + 2},
	}))
	status, err = GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	n, err := CountEvents(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Replayed records are ignored.
	require.NoError(t, InsertEvents(ctx, records))
	n, err = CountEvents(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInsertEventsKeepsResumedSession(t *testing.T) {
	ctx := connectTestDB(t)
	gameID := uuid.New()
	now := time.Now().UnixMilli()
	first, resumed := uuid.New(), uuid.New()

	require.NoError(t, InsertEvents(ctx, []cache.EventRecord{
		{GameID: gameID, SessionID: first, ActionIndex: 0, ActionType: string(game.EventGameStart), Timestamp: now},
		{GameID: gameID, SessionID: first, ActionIndex: 1, ActionType: string(game.EventGameSaved), Timestamp: now + 1},
	}))
	require.NoError(t, InsertEvents(ctx, []cache.EventRecord{
		{GameID: gameID, SessionID: resumed, ActionIndex: 0, ActionType: string(game.EventGamePlayerTurn), Timestamp: now + 2},
		{GameID: gameID, SessionID: resumed, ActionIndex: 1, ActionType: string(game.EventGameEnd), Player: "Player", Timestamp: now + 3},
	}))

	n, err := CountEvents(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	status, err := GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)
}

func TestRecordGameResult(t *testing.T) {
	ctx := connectTestDB(t)
	gameID := uuid.New()

	res := game.GameResult{Winner: "Player", RoundScore: 42, Scores: map[string]int{"Player": 42, "AI 1": 0}}
	require.NoError(t, RecordGameResult(ctx, gameID, models.Hard, res))
	require.NoError(t, StoreFinalGameState(ctx, gameID, save.Payload{GameID: gameID.String(), Difficulty: "hard"}))

	status, err := GameStatus(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	var score int
	var won bool
	err = DB.QueryRow(ctx, `SELECT score, did_win FROM game_results WHERE game_id=$1 AND player_name=$2`, gameID, "Player").Scan(&score, &won)
	require.NoError(t, err)
	assert.Equal(t, 42, score)
	assert.True(t, won)
}

func TestInsertEventsEmptyBatch(t *testing.T) {
	assert.NoError(t, InsertEvents(context.Background(), nil))
}

func TestConnectDBBadURL(t *testing.T) {
	err := ConnectDB(context.Background(), "not a url ::")
	assert.Error(t, err)
}
