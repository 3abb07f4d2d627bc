// cmd/historian/main.go is an asynchronous historian service that pops game
// events from a Redis queue and persists them to a PostgreSQL database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/database"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HistorianService batches journal records and flushes them to the database.
type HistorianService struct {
	rdb        *redis.Client
	queue      string
	batchSize  int
	flushDelay time.Duration
	batch      []cache.EventRecord
	log        *logrus.Entry

	insert func(ctx context.Context, records []cache.EventRecord) error
}

func NewHistorianService(rdb *redis.Client, cfg config.Config, log *logrus.Entry) *HistorianService {
	return &HistorianService{
		rdb:        rdb,
		queue:      cfg.QueueName,
		batchSize:  cfg.HistorianBatchSize,
		flushDelay: cfg.HistorianFlush,
		batch:      make([]cache.EventRecord, 0, cfg.HistorianBatchSize),
		log:        log,
		insert:     database.InsertEvents,
	}
}

// Run reads from the queue until ctx is done, flushing on size or on the
// flush interval. Pending records are flushed before returning.
func (hs *HistorianService) Run(ctx context.Context) {
	ticker := time.NewTicker(hs.flushDelay)
	defer ticker.Stop()

	hs.log.Info("uno-historian service started")
	defer hs.log.Info("uno-historian shutting down")

	for {
		select {
		case <-ctx.Done():
			hs.flush(context.Background())
			return

		case <-ticker.C:
			hs.flush(ctx)

		default:
			// Block no longer than the flush interval so the ticker stays responsive.
			rec, err := cache.Pop(ctx, hs.rdb, hs.queue, hs.flushDelay)
			if err != nil {
				if ctx.Err() == nil {
					hs.log.WithError(err).Error("pop")
				}
				continue
			}
			if rec == nil {
				continue
			}
			hs.batch = append(hs.batch, *rec)
			if len(hs.batch) >= hs.batchSize {
				hs.flush(ctx)
			}
		}
	}
}

// flush writes the current batch in a single transaction.
func (hs *HistorianService) flush(ctx context.Context) {
	if len(hs.batch) == 0 {
		return
	}
	n := len(hs.batch)
	if err := hs.insert(ctx, hs.batch); err != nil {
		hs.log.WithError(err).WithField("records", n).Error("flush failed; batch dropped")
	} else {
		hs.log.WithField("records", n).Debug("flushed events")
	}
	hs.batch = hs.batch[:0]
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading configuration")
	}
	logrus.SetLevel(cfg.LogLevel)
	log := logrus.WithField("component", "historian")

	if cfg.RedisAddr == "" || cfg.DatabaseURL == "" {
		log.Fatal("REDIS_ADDR and DATABASE_URL are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("connecting to redis")
	}
	defer rdb.Close()

	if err := database.ConnectDB(ctx, cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("creating schema")
	}

	NewHistorianService(rdb, cfg, log).Run(ctx)
}
