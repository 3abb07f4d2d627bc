// Package ai holds the card-choice heuristics for computer opponents. A
// strategy is picked once per game from its difficulty.
package ai

import "github.com/jason-s-yu/uno/internal/models"

// Strategy returns a legal card from hand, or nil if none is legal on top.
type Strategy interface {
	Choose(hand []*models.Card, top *models.Card, opponents map[string]int) *models.Card
}

// ThreatThreshold is the opponent hand size at which Hard reaches for draw penalties first.
const ThreatThreshold = 2

// New returns the strategy for d. Unknown values get Hard, the most conservative choice.
func New(d models.Difficulty) Strategy {
	switch d {
	case models.Easy:
		return Easy{}
	case models.Medium:
		return Medium{}
	default:
		return Hard{}
	}
}

// Easy plays the first legal card in hand order.
type Easy struct{}

func (Easy) Choose(hand []*models.Card, top *models.Card, _ map[string]int) *models.Card {
	playable := legal(hand, top)
	if len(playable) == 0 {
		return nil
	}
	return playable[0]
}

// Medium prefers a legal card matching the top card's color.
type Medium struct{}

func (Medium) Choose(hand []*models.Card, top *models.Card, _ map[string]int) *models.Card {
	return preferColor(legal(hand, top), top)
}

// Hard plays its first legal special card, falling back to Medium. When an
// opponent is close to going out, draw penalties come before other specials.
type Hard struct{}

func (Hard) Choose(hand []*models.Card, top *models.Card, opponents map[string]int) *models.Card {
	playable := legal(hand, top)
	if len(playable) == 0 {
		return nil
	}
	if minHand(opponents) <= ThreatThreshold {
		for _, c := range playable {
			if c.Kind == models.KindDrawTwo || c.Kind == models.KindWildDrawFour {
				return c
			}
		}
	}
	for _, c := range playable {
		if c.IsSpecial() {
			return c
		}
	}
	return preferColor(playable, top)
}

func legal(hand []*models.Card, top *models.Card) []*models.Card {
	var out []*models.Card
	for _, c := range hand {
		if models.CanPlay(c, top) {
			out = append(out, c)
		}
	}
	return out
}

func preferColor(playable []*models.Card, top *models.Card) *models.Card {
	if len(playable) == 0 {
		return nil
	}
	for _, c := range playable {
		if c.Color == top.Color {
			return c
		}
	}
	return playable[0]
}

// minHand returns the smallest opponent hand, or a value above any threshold
// when there are no opponents.
func minHand(opponents map[string]int) int {
	smallest := -1
	for _, n := range opponents {
		if smallest < 0 || n < smallest {
			smallest = n
		}
	}
	if smallest < 0 {
		return models.DeckSize
	}
	return smallest
}
