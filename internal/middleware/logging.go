// internal/middleware/logging.go

package middleware

import (
	"time"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/sirupsen/logrus"
)

// EventHandler receives game events. It has the shape of UnoGame.BroadcastFn.
type EventHandler func(ev game.GameEvent)

// LogEvents is an event middleware that logs every event using Logrus.
// Logs the type, player and how long the downstream handlers took.
func LogEvents(logger *logrus.Logger) func(next EventHandler) EventHandler {
	return func(next EventHandler) EventHandler {
		return func(ev game.GameEvent) {
			start := time.Now()

			if next != nil {
				next(ev)
			}

			fields := logrus.Fields{
				"event":    ev.Type,
				"duration": time.Since(start),
			}
			if ev.Player != "" {
				fields["player"] = ev.Player
			}
			if ev.Card != nil {
				fields["card"] = ev.Card.String()
			}
			logger.WithFields(fields).Debug("game event")
		}
	}
}

// Fanout calls every non-nil handler in order.
func Fanout(handlers ...EventHandler) EventHandler {
	return func(ev game.GameEvent) {
		for _, h := range handlers {
			if h != nil {
				h(ev)
			}
		}
	}
}
