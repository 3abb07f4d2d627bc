package middleware

import (
	"testing"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEventsCallsNextAndLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var got []game.GameEvent
	h := LogEvents(logger)(func(ev game.GameEvent) { got = append(got, ev) })

	h(game.GameEvent{Type: game.EventPlayerPlayCard, Player: "AI 1", Card: models.NewNumberCard(models.Green, 6)})

	require.Len(t, got, 1)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, game.EventPlayerPlayCard, entry.Data["event"])
	assert.Equal(t, "AI 1", entry.Data["player"])
	assert.Equal(t, "green 6", entry.Data["card"])
}

func TestLogEventsNilNext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	LogEvents(logger)(nil)(game.GameEvent{Type: game.EventGameStart})
	assert.Len(t, hook.Entries, 1)
	assert.NotContains(t, hook.LastEntry().Data, "player")
}

func TestFanout(t *testing.T) {
	var order []string
	h := Fanout(
		func(game.GameEvent) { order = append(order, "a") },
		nil,
		func(game.GameEvent) { order = append(order, "b") },
	)
	h(game.GameEvent{Type: game.EventGameEnd})
	assert.Equal(t, []string{"a", "b"}, order)
}
