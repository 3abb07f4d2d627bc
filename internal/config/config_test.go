package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"UNO_SAVE_DIR", "UNO_SAVE_RETENTION", "UNO_PLAYER_NAME", "UNO_AI_PLAYERS", "UNO_HAND_SIZE",
	"UNO_SEED", "LOG_LEVEL", "REDIS_ADDR", "REDIS_DB", "HISTORIAN_QUEUE_NAME", "DATABASE_URL",
	"HISTORIAN_BATCH_SIZE", "HISTORIAN_FLUSH_MS",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "saves", c.SaveDir)
	assert.Equal(t, 10, c.SaveRetention)
	assert.Equal(t, "Player", c.PlayerName)
	assert.Equal(t, 3, c.AIPlayers)
	assert.Equal(t, 7, c.HandSize)
	assert.Equal(t, int64(0), c.Seed)
	assert.Equal(t, logrus.WarnLevel, c.LogLevel)
	assert.Equal(t, "uno_events", c.QueueName)
	assert.Equal(t, time.Second, c.HistorianFlush)
	assert.Empty(t, c.RedisAddr)

	rules := c.HouseRules()
	require.Len(t, rules.Roster, 4)
	assert.Equal(t, "Player", rules.Roster[0].Name)
	assert.False(t, rules.Roster[0].IsAI)
	assert.Equal(t, "AI 3", rules.Roster[3].Name)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("UNO_PLAYER_NAME", "  Ada ")
	t.Setenv("UNO_AI_PLAYERS", "1")
	t.Setenv("UNO_SEED", "1234")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HISTORIAN_FLUSH_MS", "2500")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.PlayerName)
	assert.Equal(t, 1, c.AIPlayers)
	assert.Equal(t, int64(1234), c.Seed)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, 2500*time.Millisecond, c.HistorianFlush)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"UNO_AI_PLAYERS":     "0",
		"UNO_SAVE_RETENTION": "zero",
		"UNO_SEED":           "abc",
		"LOG_LEVEL":          "loud",
		"UNO_HAND_SIZE":      "40",
		"UNO_PLAYER_NAME":    "AI 1",
		"HISTORIAN_FLUSH_MS": "500",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
