package console

import (
	"sort"
	"strings"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

// Render prints one game event. Its signature matches UnoGame.BroadcastFn.
func (c *Console) Render(ev game.GameEvent) {
	switch ev.Type {
	case game.EventGameStart:
		c.printf("\n%s\n", c.accent.Sprint(strings.Repeat("=", 40)))
		c.printf("%s\n", c.accent.Sprint("UNO"))
		c.printf("%s\n", c.accent.Sprint(strings.Repeat("=", 40)))
		c.printf("Starting card: %s\n", c.Card(ev.Card))

	case game.EventGamePlayerTurn:
		if ev.State == nil {
			return
		}
		c.printf("\n%s\n", c.accent.Sprint("Players:"))
		for _, s := range ev.State.Seats {
			marker := " "
			if s.IsCurrentTurn {
				marker = ">"
			}
			c.printf("%s %s: %d cards\n", marker, s.Name, s.HandSize)
		}
		c.printf("Top card: %s\n", c.Card(ev.Card))

	case game.EventPlayerPlayCard:
		c.printf("%s plays %s\n", ev.Player, c.Card(ev.Card))

	case game.EventPlayerWildColor:
		if ev.Card == nil {
			return
		}
		c.printf("%s chooses %s\n", ev.Player, c.palette[ev.Card.Color].Sprint(ev.Card.Color))

	case game.EventPlayerSpecialEffect:
		c.printf("%s\n", c.effectLine(ev))

	case game.EventPlayerDraw:
		if len(ev.Cards) > 0 {
			cards := make([]string, 0, len(ev.Cards))
			for _, card := range ev.Cards {
				cards = append(cards, c.Card(card))
			}
			c.printf("%s draws %s\n", ev.Player, strings.Join(cards, " "))
			return
		}
		c.printf("%s draws %v card(s)\n", ev.Player, ev.Payload["count"])

	case game.EventPlayerDrawFailed:
		c.printf("%s\n", c.warn.Sprintf("No cards left to draw for %s.", ev.Player))

	case game.EventPlayerUno:
		c.printf("%s\n", c.warn.Sprintf("%s: UNO!", ev.Player))

	case game.EventPlayerPlayRejected:
		c.printf("%s\n", c.warn.Sprintf("Not allowed: %v", ev.Payload["reason"]))

	case game.EventReshuffleDiscard:
		c.printf("Discard pile shuffled back into the deck.\n")

	case game.EventGameSaved:
		c.printf("Game saved (%v).\n", ev.Payload["id"])

	case game.EventGameSaveFailed:
		c.printf("%s\n", c.warn.Sprintf("Save failed: %v", ev.Payload["error"]))

	case game.EventGameStats:
		c.printf("\n%s\n", c.accent.Sprint("Statistics:"))
		keys := make([]string, 0, len(ev.Payload))
		for k := range ev.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c.printf("  %-22s %v\n", strings.ReplaceAll(k, "_", " "), ev.Payload[k])
		}

	case game.EventAchievementUnlocked:
		c.printf("%s\n", c.accent.Sprintf("Achievement unlocked: %v (%v)", ev.Payload["name"], ev.Payload["description"]))

	case game.EventGameEnd:
		c.printf("\n%s\n", c.accent.Sprintf("%s wins and scores %v points!", ev.Player, ev.Payload["roundScore"]))
		if scores, ok := ev.Payload["scores"].(map[string]int); ok {
			names := make([]string, 0, len(scores))
			for name := range scores {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				c.printf("  %-10s %d\n", name, scores[name])
			}
		}
	}
}

func (c *Console) effectLine(ev game.GameEvent) string {
	var parts []string
	if target, ok := ev.Payload["target"]; ok {
		parts = append(parts, c.warn.Sprintf("%v draws %v", target, ev.Payload["penalty"]))
	}
	if ev.Card != nil && ev.Card.Kind == models.KindReverse {
		parts = append(parts, "direction reversed")
	}
	if _, ok := ev.Payload["skipped"]; ok {
		parts = append(parts, "next player skipped")
	}
	if len(parts) == 0 {
		return ev.Player + "'s card has no effect"
	}
	return strings.Join(parts, ", ")
}
