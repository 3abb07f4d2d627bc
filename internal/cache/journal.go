package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Journal forwards game events to the historian queue. Failures are logged and
// never reach the game.
type Journal struct {
	rdb     *redis.Client
	queue   string
	gameID  uuid.UUID
	session uuid.UUID
	index   int
	timeout time.Duration
	now     func() time.Time
	log     *logrus.Entry
}

// NewJournal starts a new session for gameID with its index at zero.
func NewJournal(rdb *redis.Client, queue string, gameID uuid.UUID, log *logrus.Entry) *Journal {
	if queue == "" {
		queue = DefaultQueueName
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Journal{
		rdb:     rdb,
		queue:   queue,
		gameID:  gameID,
		session: uuid.New(),
		timeout: time.Second,
		now:     time.Now,
		log:     log.WithField("queue", queue),
	}
}

// SetGame points subsequent records at a new game in a new session.
func (j *Journal) SetGame(id uuid.UUID) {
	j.gameID = id
	j.session = uuid.New()
	j.index = 0
}

// Session identifies the records published by this journal.
func (j *Journal) Session() uuid.UUID {
	return j.session
}

// Record publishes ev. Its signature matches UnoGame.BroadcastFn.
func (j *Journal) Record(ev game.GameEvent) {
	rec := EventRecord{
		GameID:      j.gameID,
		SessionID:   j.session,
		ActionIndex: j.index,
		ActionType:  string(ev.Type),
		Player:      ev.Player,
		Payload:     recordPayload(ev),
		Timestamp:   j.now().UnixMilli(),
	}
	j.index++

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if err := Publish(ctx, j.rdb, j.queue, rec); err != nil {
		j.log.WithError(err).WithField("event", ev.Type).Warn("journal publish failed")
	}
}

// recordPayload flattens the event for storage. Table views are dropped.
func recordPayload(ev game.GameEvent) map[string]interface{} {
	if ev.Payload == nil && ev.Card == nil && len(ev.Cards) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(ev.Payload)+2)
	for k, v := range ev.Payload {
		out[k] = v
	}
	if ev.Card != nil {
		out["card"] = ev.Card
	}
	if len(ev.Cards) > 0 {
		out["cards"] = ev.Cards
	}
	return out
}
