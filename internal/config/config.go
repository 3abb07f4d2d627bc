// Package config reads runtime settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jason-s-yu/uno/internal/models"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxAIPlayers bounds UNO_AI_PLAYERS.
const MaxAIPlayers = 9

// MinHistorianFlush is the shortest flush interval. The historian waits on
// Redis in whole seconds, so shorter intervals could not be honoured.
const MinHistorianFlush = time.Second

type Config struct {
	SaveDir       string
	SaveRetention int
	PlayerName    string
	AIPlayers     int
	HandSize      int
	Seed          int64
	LogLevel      logrus.Level

	// Journal and historian. An empty RedisAddr disables the journal.
	RedisAddr          string
	RedisDB            int
	QueueName          string
	DatabaseURL        string
	HistorianBatchSize int
	HistorianFlush     time.Duration
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	c := Config{
		SaveDir:     getEnv("UNO_SAVE_DIR", "saves"),
		PlayerName:  strings.TrimSpace(getEnv("UNO_PLAYER_NAME", "Player")),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		QueueName:   getEnv("HISTORIAN_QUEUE_NAME", "uno_events"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	var err error
	if c.SaveRetention, err = getEnvInt("UNO_SAVE_RETENTION", 10); err != nil {
		return Config{}, err
	}
	if c.AIPlayers, err = getEnvInt("UNO_AI_PLAYERS", 3); err != nil {
		return Config{}, err
	}
	if c.HandSize, err = getEnvInt("UNO_HAND_SIZE", 7); err != nil {
		return Config{}, err
	}
	if c.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if c.HistorianBatchSize, err = getEnvInt("HISTORIAN_BATCH_SIZE", 20); err != nil {
		return Config{}, err
	}
	flushMS, err := getEnvInt("HISTORIAN_FLUSH_MS", 1000)
	if err != nil {
		return Config{}, err
	}
	c.HistorianFlush = time.Duration(flushMS) * time.Millisecond

	if s := os.Getenv("UNO_SEED"); s != "" {
		c.Seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: UNO_SEED %q: %v", ErrInvalidConfig, s, err)
		}
	}

	c.LogLevel, err = logrus.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and that the table can be dealt.
func (c Config) Validate() error {
	if c.SaveRetention < 1 {
		return fmt.Errorf("%w: UNO_SAVE_RETENTION must be at least 1, got %d", ErrInvalidConfig, c.SaveRetention)
	}
	if c.AIPlayers < 1 || c.AIPlayers > MaxAIPlayers {
		return fmt.Errorf("%w: UNO_AI_PLAYERS must be between 1 and %d, got %d", ErrInvalidConfig, MaxAIPlayers, c.AIPlayers)
	}
	if c.HistorianBatchSize < 1 {
		return fmt.Errorf("%w: HISTORIAN_BATCH_SIZE must be positive", ErrInvalidConfig)
	}
	if c.HistorianFlush < MinHistorianFlush {
		return fmt.Errorf("%w: HISTORIAN_FLUSH_MS must be at least %d, got %d",
			ErrInvalidConfig, MinHistorianFlush.Milliseconds(), c.HistorianFlush.Milliseconds())
	}
	if err := c.HouseRules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// HouseRules is the roster and hand size this configuration describes.
func (c Config) HouseRules() models.HouseRules {
	return models.HouseRules{
		HandSize: c.HandSize,
		Roster:   models.Roster(c.PlayerName, c.AIPlayers),
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else returns the default.
func getEnvInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidConfig, key, s)
	}
	return v, nil
}
