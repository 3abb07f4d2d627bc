// internal/models/house_rules.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Seat describes one entry of the table roster.
type Seat struct {
	Name string `json:"name"`
	IsAI bool   `json:"is_ai"`
}

// HouseRules captures the table configuration a game is created with.
type HouseRules struct {
	// HandSize is how many cards each player is dealt.
	HandSize int `json:"hand_size"`

	// Roster is the fixed turn order. Position 0 plays first.
	Roster []Seat `json:"roster"`
}

// DefaultHouseRules is one human and three AI opponents, seven cards each.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		HandSize: 7,
		Roster: []Seat{
			{Name: "Player"},
			{Name: "AI 1", IsAI: true},
			{Name: "AI 2", IsAI: true},
			{Name: "AI 3", IsAI: true},
		},
	}
}

// Roster builds a roster of one human followed by aiCount AI seats.
func Roster(humanName string, aiCount int) []Seat {
	seats := []Seat{{Name: humanName}}
	for i := 1; i <= aiCount; i++ {
		seats = append(seats, Seat{Name: fmt.Sprintf("AI %d", i), IsAI: true})
	}
	return seats
}

var ErrInvalidRules = errors.New("invalid house rules")

// Validate checks that the rules can be dealt from a single 108-card deck.
func (h HouseRules) Validate() error {
	if len(h.Roster) < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidRules, len(h.Roster))
	}
	if h.HandSize < 1 {
		return fmt.Errorf("%w: hand size must be positive", ErrInvalidRules)
	}
	if h.HandSize*len(h.Roster) >= DeckSize {
		return fmt.Errorf("%w: %d players x %d cards leaves no draw pile", ErrInvalidRules, len(h.Roster), h.HandSize)
	}
	seen := make(map[string]bool, len(h.Roster))
	for _, s := range h.Roster {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: empty player name", ErrInvalidRules)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidRules, name)
		}
		seen[name] = true
	}
	return nil
}
