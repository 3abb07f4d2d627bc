package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestJournalPublishesInOrder(t *testing.T) {
	mr, rdb := newTestRedis(t)
	gameID := uuid.New()
	j := NewJournal(rdb, "test_events", gameID, nil)
	j.now = func() time.Time { return time.UnixMilli(1700000000000) }

	j.Record(game.GameEvent{Type: game.EventGameStart, Card: models.NewNumberCard(models.Red, 4)})
	j.Record(game.GameEvent{
		Type:    game.EventPlayerDraw,
		Player:  "Player",
		Payload: map[string]interface{}{"count": 2},
		State:   &game.TableView{CurrentPlayer: "Player"},
	})

	items, err := mr.List("test_events")
	require.NoError(t, err)
	require.Len(t, items, 2)

	ctx := context.Background()
	first, err := Pop(ctx, rdb, "test_events", time.Second)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, gameID, first.GameID)
	assert.Equal(t, j.Session(), first.SessionID)
	assert.Equal(t, 0, first.ActionIndex)
	assert.Equal(t, "game_start", first.ActionType)
	assert.Equal(t, int64(1700000000000), first.Timestamp)
	card, ok := first.Payload["card"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "red", card["color"])

	second, err := Pop(ctx, rdb, "test_events", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, second.ActionIndex)
	assert.Equal(t, "Player", second.Player)
	assert.Equal(t, float64(2), second.Payload["count"])
	assert.NotContains(t, second.Payload, "state")
}

func TestJournalSetGameRestartsIndex(t *testing.T) {
	_, rdb := newTestRedis(t)
	j := NewJournal(rdb, "", uuid.New(), nil)
	j.Record(game.GameEvent{Type: game.EventGameStart})
	firstSession := j.Session()

	next := uuid.New()
	j.SetGame(next)
	j.Record(game.GameEvent{Type: game.EventGameStart})

	ctx := context.Background()
	_, err := Pop(ctx, rdb, DefaultQueueName, time.Second)
	require.NoError(t, err)
	rec, err := Pop(ctx, rdb, DefaultQueueName, time.Second)
	require.NoError(t, err)
	assert.Equal(t, next, rec.GameID)
	assert.Equal(t, 0, rec.ActionIndex)
	assert.NotEqual(t, firstSession, rec.SessionID)
	assert.Nil(t, rec.Payload)
}

func TestJournalsForSameGameUseDistinctSessions(t *testing.T) {
	_, rdb := newTestRedis(t)
	gameID := uuid.New()
	first := NewJournal(rdb, "", gameID, nil)
	resumed := NewJournal(rdb, "", gameID, nil)
	first.Record(game.GameEvent{Type: game.EventGameStart})
	resumed.Record(game.GameEvent{Type: game.EventGamePlayerTurn})

	ctx := context.Background()
	a, err := Pop(ctx, rdb, DefaultQueueName, time.Second)
	require.NoError(t, err)
	b, err := Pop(ctx, rdb, DefaultQueueName, time.Second)
	require.NoError(t, err)
	assert.Equal(t, a.GameID, b.GameID)
	assert.Equal(t, a.ActionIndex, b.ActionIndex)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestJournalSurvivesRedisOutage(t *testing.T) {
	mr, rdb := newTestRedis(t)
	j := NewJournal(rdb, "", uuid.New(), nil)
	j.timeout = 100 * time.Millisecond
	mr.Close()

	assert.NotPanics(t, func() {
		j.Record(game.GameEvent{Type: game.EventGameEnd})
	})
}

func TestPopInvalidRecord(t *testing.T) {
	mr, rdb := newTestRedis(t)
	_, err := mr.RPush("bad", "{not json")
	require.NoError(t, err)

	_, err = Pop(context.Background(), rdb, "bad", time.Second)
	assert.Error(t, err)
}

func TestPopShortTimeoutWaitsMinimum(t *testing.T) {
	_, rdb := newTestRedis(t)

	start := time.Now()
	rec, err := Pop(context.Background(), rdb, "empty", 100*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.GreaterOrEqual(t, time.Since(start), MinPopTimeout-100*time.Millisecond)
}

func TestConnectFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr, 0)
	assert.Error(t, err)
}
