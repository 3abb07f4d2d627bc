// cmd/uno/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/jason-s-yu/uno/internal/ai"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/console"
	"github.com/jason-s-yu/uno/internal/database"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/middleware"
	"github.com/jason-s-yu/uno/internal/save"
	"github.com/sirupsen/logrus"
)

var flags Flags

type Flags struct {
	verbose bool
}

func main() {
	// Parse command line flags
	for _, arg := range os.Args[1:] {
		if arg == "-v" {
			flags.verbose = true
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uno: %v\n", err)
		os.Exit(2)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.LogLevel)
	if flags.verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.Debug("Verbose mode enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("game aborted")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger, in io.Reader, out io.Writer) error {
	rng := newRand(cfg.Seed)
	con := console.New(in, out)

	mgr, err := save.NewManager(cfg.SaveDir,
		save.WithRetention(cfg.SaveRetention),
		save.WithLogger(logger.WithField("component", "save")),
	)
	if err != nil {
		return err
	}

	g, err := loadOrNew(ctx, cfg, con, mgr, rng, logger)
	if err != nil {
		return err
	}
	g.Strategy = ai.New(g.Difficulty)
	g.Input = con
	g.Saver = mgr

	handlers := []middleware.EventHandler{con.Render}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("event journal disabled")
		} else {
			defer rdb.Close()
			j := cache.NewJournal(rdb, cfg.QueueName, g.ID, logger.WithField("game_id", g.ID))
			handlers = append(handlers, j.Record)
		}
	}
	g.BroadcastFn = middleware.LogEvents(logger)(middleware.Fanout(handlers...))

	if cfg.DatabaseURL != "" {
		if err := database.ConnectDB(ctx, cfg.DatabaseURL); err != nil {
			logger.WithError(err).Warn("result recording disabled")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				logger.WithError(err).Warn("schema check failed")
			}
			g.OnGameEnd = recordResult(g, logger)
		}
	}

	res, err := g.Run(ctx)
	if err != nil {
		return err
	}
	if res == nil {
		con.Message("Goodbye.")
	}
	return nil
}

// loadOrNew offers saved games and falls back to a fresh game on any load error.
func loadOrNew(ctx context.Context, cfg config.Config, con *console.Console, mgr *save.Manager, rng *rand.Rand, logger *logrus.Logger) (*game.UnoGame, error) {
	entries, err := mgr.List()
	if err != nil {
		logger.WithError(err).Warn("listing saves")
	}

	id, err := con.ChooseSave(ctx, entries)
	if err != nil {
		return nil, err
	}
	if id != "" {
		g, err := loadGame(mgr, id, rng)
		if err == nil {
			con.Message("Game loaded.")
			return g, nil
		}
		logger.WithError(err).WithField("save", id).Warn("load failed")
		con.Message(fmt.Sprintf("Could not load that save (%v). Starting a new game.", err))
	}

	difficulty, err := con.ChooseDifficulty(ctx)
	if err != nil {
		return nil, err
	}
	return game.NewUnoGame(cfg.HouseRules(), difficulty, rng)
}

func loadGame(mgr *save.Manager, id string, rng *rand.Rand) (*game.UnoGame, error) {
	p, err := mgr.Load(id)
	if err != nil {
		return nil, err
	}
	return game.Restore(p, rng)
}

func recordResult(g *game.UnoGame, logger *logrus.Logger) game.OnGameEndFunc {
	return func(res game.GameResult) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.RecordGameResult(ctx, g.ID, g.Difficulty, res); err != nil {
			logger.WithError(err).Warn("recording game result")
			return
		}
		if err := database.StoreFinalGameState(ctx, g.ID, g.Snapshot()); err != nil {
			logger.WithError(err).Warn("storing final game state")
		}
	}
}

// newRand seeds from seed, or from the clock when seed is zero.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
