package game

import "errors"

var (
	// ErrEmptyDeck means neither pile can supply a card. The player simply cannot draw.
	ErrEmptyDeck = errors.New("no card available to draw")
	// ErrIllegalPlay is returned before any state is touched.
	ErrIllegalPlay = errors.New("illegal play")
	// ErrGameOver is returned when a turn is requested after a hand has emptied.
	ErrGameOver = errors.New("game is over")
)
