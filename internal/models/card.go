// internal/models/card.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Color is the color of a card. Wild is only carried by unresolved wild cards.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Wild   Color = "wild"
)

// Colors lists the four concrete colors in the order used for menus and tie-breaks.
var Colors = []Color{Red, Blue, Green, Yellow}

// Valid reports whether c is one of the known colors.
func (c Color) Valid() bool {
	switch c {
	case Red, Blue, Green, Yellow, Wild:
		return true
	}
	return false
}

// Kind identifies what a card does when played.
type Kind string

const (
	KindNumber       Kind = "number"
	KindSkip         Kind = "skip"
	KindReverse      Kind = "reverse"
	KindDrawTwo      Kind = "draw_two"
	KindWild         Kind = "wild"
	KindWildDrawFour Kind = "wild_draw_four"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNumber, KindSkip, KindReverse, KindDrawTwo, KindWild, KindWildDrawFour:
		return true
	}
	return false
}

// IsWild is true for Wild and WildDrawFour.
func (k Kind) IsWild() bool {
	return k == KindWild || k == KindWildDrawFour
}

// ErrInvalidCard is returned when a card violates the color/kind/number invariants.
var ErrInvalidCard = errors.New("invalid card")

// Card is a single UNO card. Number is meaningful only for KindNumber.
type Card struct {
	Color  Color
	Kind   Kind
	Number int
}

// NewNumberCard returns a colored number card.
func NewNumberCard(color Color, n int) *Card {
	return &Card{Color: color, Kind: KindNumber, Number: n}
}

// NewActionCard returns a colored Skip, Reverse or DrawTwo card.
func NewActionCard(color Color, kind Kind) *Card {
	return &Card{Color: color, Kind: kind}
}

// NewWildCard returns an unresolved Wild or WildDrawFour card.
func NewWildCard(kind Kind) *Card {
	return &Card{Color: Wild, Kind: kind}
}

// Validate checks the card invariants. A wild kind may carry a concrete color
// once it has been resolved at play time.
func (c *Card) Validate() error {
	if !c.Color.Valid() {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidCard, c.Color)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCard, c.Kind)
	}
	if !c.Kind.IsWild() && c.Color == Wild {
		return fmt.Errorf("%w: %s cannot be wild-colored", ErrInvalidCard, c.Kind)
	}
	if c.Kind == KindNumber && (c.Number < 0 || c.Number > 9) {
		return fmt.Errorf("%w: number %d out of range", ErrInvalidCard, c.Number)
	}
	return nil
}

// IsSpecial is true for every kind except KindNumber.
func (c *Card) IsSpecial() bool {
	return c.Kind != KindNumber
}

// IsResolved reports whether a wild card has been given a concrete color.
func (c *Card) IsResolved() bool {
	return c.Color != Wild
}

// ResetWild returns a played wild card to its unresolved color.
func (c *Card) ResetWild() {
	if c.Kind.IsWild() {
		c.Color = Wild
	}
}

// Points is the score value of the card when left in an opponent's hand.
func (c *Card) Points() int {
	switch c.Kind {
	case KindNumber:
		return c.Number
	case KindSkip, KindReverse, KindDrawTwo:
		return 20
	default:
		return 50
	}
}

func (c *Card) String() string {
	if c.Kind == KindNumber {
		return fmt.Sprintf("%s %d", c.Color, c.Number)
	}
	return fmt.Sprintf("%s %s", c.Color, c.Kind)
}

// CanPlay reports whether candidate may be placed on top. Only candidate is
// tested against top, never the reverse.
func CanPlay(candidate, top *Card) bool {
	if candidate.Color == Wild {
		return true
	}
	if candidate.Color == top.Color {
		return true
	}
	if candidate.Kind == top.Kind && candidate.Kind != KindNumber {
		return true
	}
	return candidate.Kind == KindNumber && top.Kind == KindNumber && candidate.Number == top.Number
}

// cardJSON is the wire form {color, kind, number?}.
type cardJSON struct {
	Color  Color `json:"color"`
	Kind   Kind  `json:"kind"`
	Number *int  `json:"number,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	w := cardJSON{Color: c.Color, Kind: c.Kind}
	if c.Kind == KindNumber {
		n := c.Number
		w.Number = &n
	}
	return json.Marshal(w)
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var w cardJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	card := Card{Color: w.Color, Kind: w.Kind}
	switch {
	case w.Kind == KindNumber && w.Number == nil:
		return fmt.Errorf("%w: number card without number", ErrInvalidCard)
	case w.Kind != KindNumber && w.Number != nil:
		return fmt.Errorf("%w: %s card with number", ErrInvalidCard, w.Kind)
	case w.Number != nil:
		card.Number = *w.Number
	}
	if err := card.Validate(); err != nil {
		return err
	}
	*c = card
	return nil
}
