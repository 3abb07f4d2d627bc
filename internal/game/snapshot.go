package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
)

// Snapshot captures the persisted state. The draw pile is not stored; Restore
// rebuilds it from the cards that are in play.
func (g *UnoGame) Snapshot() save.Payload {
	p := save.Payload{
		GameID:        g.ID.String(),
		Difficulty:    string(g.Difficulty),
		CurrentPlayer: g.CurrentPlayerIndex,
		Direction:     g.Direction,
		Scores:        copyScores(g.Scores),
		Stats:         g.Stats.Map(),
		DiscardPile:   cloneCards(g.Deck.DiscardPile),
		Achievements:  g.Achievements.IDs(),
	}
	for _, pl := range g.Players {
		p.Players = append(p.Players, save.PlayerRecord{
			Name: pl.Name,
			IsAI: pl.IsAI,
			Hand: cloneCards(pl.Hand),
		})
	}
	return p
}

// Restore rebuilds a started game from a snapshot. Structural problems are
// reported as save.ErrInvalidSaveFormat. A nil rng is replaced by a time-seeded source.
func Restore(p *save.Payload, rng *rand.Rand) (*UnoGame, error) {
	if err := validatePayload(p); err != nil {
		return nil, fmt.Errorf("%w: %v", save.ErrInvalidSaveFormat, err)
	}
	difficulty, err := models.ParseDifficulty(p.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", save.ErrInvalidSaveFormat, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	id, err := uuid.Parse(p.GameID)
	if err != nil {
		id = uuid.New()
	}

	g := &UnoGame{
		ID:                 id,
		Difficulty:         difficulty,
		CurrentPlayerIndex: p.CurrentPlayer,
		Direction:          p.Direction,
		Scores:             make(map[string]int, len(p.Players)),
		Stats:              StatsFromMap(p.Stats),
		Achievements:       NewAchievements(p.Achievements...),
		Started:            true,
		rng:                rng,
	}
	g.Rules.HandSize = models.DefaultHouseRules().HandSize

	hands := make([][]*models.Card, 0, len(p.Players))
	for _, rec := range p.Players {
		pl := models.NewPlayer(rec.Name, rec.IsAI)
		for _, c := range cloneCards(rec.Hand) {
			// A wild in hand has no color until it is played.
			c.ResetWild()
			pl.AddCard(c)
		}
		g.Players = append(g.Players, pl)
		g.Rules.Roster = append(g.Rules.Roster, models.Seat{Name: rec.Name, IsAI: rec.IsAI})
		g.Scores[rec.Name] = p.Scores[rec.Name]
		hands = append(hands, pl.Hand)
	}

	deck, err := RebuildDeck(rng, cloneCards(p.DiscardPile), hands...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", save.ErrInvalidSaveFormat, err)
	}
	g.Deck = deck
	g.GameOver = g.IsGameOver()
	g.init()
	return g, nil
}

func validatePayload(p *save.Payload) error {
	if p == nil {
		return fmt.Errorf("empty payload")
	}
	if len(p.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(p.Players))
	}
	seen := make(map[string]bool, len(p.Players))
	for _, rec := range p.Players {
		if rec.Name == "" {
			return fmt.Errorf("player without a name")
		}
		if seen[rec.Name] {
			return fmt.Errorf("duplicate player %q", rec.Name)
		}
		seen[rec.Name] = true
		for _, c := range rec.Hand {
			if c == nil {
				return fmt.Errorf("null card in %s's hand", rec.Name)
			}
		}
	}
	if p.CurrentPlayer < 0 || p.CurrentPlayer >= len(p.Players) {
		return fmt.Errorf("current player %d out of range", p.CurrentPlayer)
	}
	if p.Direction != 1 && p.Direction != -1 {
		return fmt.Errorf("direction must be 1 or -1, got %d", p.Direction)
	}
	if len(p.DiscardPile) == 0 {
		return fmt.Errorf("empty discard pile")
	}
	for _, c := range p.DiscardPile {
		if c == nil {
			return fmt.Errorf("null card in discard pile")
		}
	}
	if top := p.DiscardPile[len(p.DiscardPile)-1]; !top.IsResolved() {
		return fmt.Errorf("discard top %s has no color", top)
	}
	return nil
}

func cloneCards(cards []*models.Card) []*models.Card {
	out := make([]*models.Card, 0, len(cards))
	for _, c := range cards {
		cp := *c
		out = append(out, &cp)
	}
	return out
}
