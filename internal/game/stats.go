package game

import "github.com/jason-s-yu/uno/internal/models"

// Stat keys used in snapshots and event payloads.
const (
	StatCardsPlayed        = "cards_played"
	StatTurnsPlayed        = "turns_played"
	StatCardsDrawn         = "cards_drawn"
	StatSpecialCardsPlayed = "special_cards_played"
	StatGamesWon           = "games_won"
	StatMaxCardsInHand     = "max_cards_in_hand"
)

// Stats are monotonic counters for a session. They only go back down through
// an explicit load.
type Stats struct {
	cardsPlayed        int
	turnsPlayed        int
	cardsDrawn         int
	specialCardsPlayed int
	gamesWon           int
	maxCardsInHand     int
}

func (s *Stats) CardsPlayed() int { return s.cardsPlayed }
func (s *Stats) TurnsPlayed() int { return s.turnsPlayed }
func (s *Stats) CardsDrawn() int { return s.cardsDrawn }
func (s *Stats) SpecialCardsPlayed() int { return s.specialCardsPlayed }
func (s *Stats) GamesWon() int { return s.gamesWon }
func (s *Stats) MaxCardsInHand() int { return s.maxCardsInHand }

// RecordPlay counts one played card.
func (s *Stats) RecordPlay(c *models.Card) {
	s.cardsPlayed++
	if c.IsSpecial() {
		s.specialCardsPlayed++
	}
}

func (s *Stats) RecordTurn() { s.turnsPlayed++ }
func (s *Stats) RecordDraw(n int) { s.cardsDrawn += n }
func (s *Stats) RecordWin() { s.gamesWon++ }

// ObserveHands raises the hand-size high-water mark.
func (s *Stats) ObserveHands(players []*models.Player) {
	for _, p := range players {
		if n := p.HandSize(); n > s.maxCardsInHand {
			s.maxCardsInHand = n
		}
	}
}

// Map returns the counters keyed by their snapshot names.
func (s *Stats) Map() map[string]int {
	return map[string]int{
		StatCardsPlayed:        s.cardsPlayed,
		StatTurnsPlayed:        s.turnsPlayed,
		StatCardsDrawn:         s.cardsDrawn,
		StatSpecialCardsPlayed: s.specialCardsPlayed,
		StatGamesWon:           s.gamesWon,
		StatMaxCardsInHand:     s.maxCardsInHand,
	}
}

// StatsFromMap restores counters from a snapshot. Missing keys read as zero.
func StatsFromMap(m map[string]int) Stats {
	return Stats{
		cardsPlayed:        m[StatCardsPlayed],
		turnsPlayed:        m[StatTurnsPlayed],
		cardsDrawn:         m[StatCardsDrawn],
		specialCardsPlayed: m[StatSpecialCardsPlayed],
		gamesWon:           m[StatGamesWon],
		maxCardsInHand:     m[StatMaxCardsInHand],
	}
}
