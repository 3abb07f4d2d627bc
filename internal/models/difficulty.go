package models

import (
	"fmt"
	"strings"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 108

// Difficulty selects the AI strategy for a game.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts the English names and the menu numbers 1-3.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
