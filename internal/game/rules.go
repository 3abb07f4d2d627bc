// internal/game/rules.go
package game

import "github.com/jason-s-yu/uno/internal/models"

// Effect is the turn-order mutation a played card causes, applied before the
// unconditional advance that ends every turn.
type Effect struct {
	// Reverse flips the direction of play.
	Reverse bool
	// Penalty is the number of cards forced on the next player in turn order.
	Penalty int
	// Skips is the number of extra advance steps.
	Skips int
}

// None reports whether the effect leaves the table untouched.
func (e Effect) None() bool {
	return !e.Reverse && e.Penalty == 0 && e.Skips == 0
}

// EffectFor maps a played card kind to its effect for a table of playerCount
// players. With two players Reverse degenerates to Skip.
func EffectFor(kind models.Kind, playerCount int) Effect {
	switch kind {
	case models.KindSkip:
		return Effect{Skips: 1}
	case models.KindReverse:
		e := Effect{Reverse: true}
		if playerCount == 2 {
			e.Skips = 1
		}
		return e
	case models.KindDrawTwo:
		return Effect{Penalty: 2, Skips: 1}
	case models.KindWildDrawFour:
		return Effect{Penalty: 4, Skips: 1}
	default:
		return Effect{}
	}
}

// step returns the seat index n steps from idx in direction dir.
func step(idx, dir, n, playerCount int) int {
	next := (idx + dir*n) % playerCount
	if next < 0 {
		next += playerCount
	}
	return next
}

// applyEffect resolves the effect of the card player just placed on the discard pile.
// The direction flips first, then the next player in the current direction
// takes the penalty, then the extra steps run.
func (g *UnoGame) applyEffect(player *models.Player, card *models.Card) {
	e := EffectFor(card.Kind, len(g.Players))
	if e.None() {
		return
	}

	if e.Reverse {
		g.Direction = -g.Direction
	}

	payload := map[string]interface{}{
		"direction": g.Direction,
	}

	if e.Penalty > 0 {
		target := g.Players[step(g.CurrentPlayerIndex, g.Direction, 1, len(g.Players))]
		drawn := g.drawInto(target, e.Penalty)
		payload["target"] = target.Name
		payload["penalty"] = len(drawn)
	}

	for i := 0; i < e.Skips; i++ {
		g.advanceTurn()
	}
	if e.Skips > 0 {
		payload["skipped"] = e.Skips
	}

	g.fireEvent(GameEvent{
		Type:    EventPlayerSpecialEffect,
		Player:  player.Name,
		Card:    card,
		Payload: payload,
	})
}
