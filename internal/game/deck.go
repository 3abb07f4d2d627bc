// internal/game/deck.go
package game

import (
	"fmt"
	"math/rand"

	"github.com/jason-s-yu/uno/internal/models"
)

// Deck holds the draw pile and the discard pile. The top of both piles is the
// last element.
type Deck struct {
	DrawPile    []*models.Card
	DiscardPile []*models.Card

	rng *rand.Rand

	// OnReshuffle is called after the discard pile is recycled into the draw pile.
	OnReshuffle func(drawSize int)
}

// NewDeck builds the standard unshuffled 108-card deck.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{
		DrawPile:    StandardCards(),
		DiscardPile: []*models.Card{},
		rng:         rng,
	}
}

// StandardCards returns a fresh set of the 108 cards: per color one 0, two each
// of 1-9, two each of Skip/Reverse/DrawTwo; plus four Wild and four WildDrawFour.
func StandardCards() []*models.Card {
	cards := make([]*models.Card, 0, models.DeckSize)
	for _, color := range models.Colors {
		cards = append(cards, models.NewNumberCard(color, 0))
		for n := 1; n <= 9; n++ {
			cards = append(cards, models.NewNumberCard(color, n), models.NewNumberCard(color, n))
		}
		for _, kind := range []models.Kind{models.KindSkip, models.KindReverse, models.KindDrawTwo} {
			cards = append(cards, models.NewActionCard(color, kind), models.NewActionCard(color, kind))
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, models.NewWildCard(models.KindWild), models.NewWildCard(models.KindWildDrawFour))
	}
	return cards
}

// Shuffle shuffles the draw pile in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.DrawPile), func(i, j int) {
		d.DrawPile[i], d.DrawPile[j] = d.DrawPile[j], d.DrawPile[i]
	})
}

// Draw pops the top of the draw pile, recycling the discard pile first when the
// draw pile is empty. Returns ErrEmptyDeck when no card is available.
func (d *Deck) Draw() (*models.Card, error) {
	if len(d.DrawPile) == 0 {
		if err := d.reshuffleDiscard(); err != nil {
			return nil, err
		}
	}
	last := len(d.DrawPile) - 1
	card := d.DrawPile[last]
	d.DrawPile = d.DrawPile[:last]
	return card, nil
}

// reshuffleDiscard moves every discard except the top into the draw pile and
// shuffles it. Played wilds lose their chosen color.
func (d *Deck) reshuffleDiscard() error {
	if len(d.DiscardPile) <= 1 {
		return ErrEmptyDeck
	}
	last := len(d.DiscardPile) - 1
	top := d.DiscardPile[last]
	recycled := d.DiscardPile[:last]
	for _, c := range recycled {
		c.ResetWild()
	}
	d.DrawPile = append(d.DrawPile, recycled...)
	d.DiscardPile = []*models.Card{top}
	d.Shuffle()
	if d.OnReshuffle != nil {
		d.OnReshuffle(len(d.DrawPile))
	}
	return nil
}

// Top returns the current discard top, or nil before the initial discard.
func (d *Deck) Top() *models.Card {
	if len(d.DiscardPile) == 0 {
		return nil
	}
	return d.DiscardPile[len(d.DiscardPile)-1]
}

// Discard places c on top of the discard pile.
func (d *Deck) Discard(c *models.Card) {
	d.DiscardPile = append(d.DiscardPile, c)
}

// SetupInitialDiscard draws until a colored card turns up and makes it the sole
// discard entry. Wilds drawn on the way go back into the draw pile, which is
// then shuffled.
func (d *Deck) SetupInitialDiscard() error {
	var rejected []*models.Card
	defer func() {
		if len(rejected) > 0 {
			d.DrawPile = append(d.DrawPile, rejected...)
			d.Shuffle()
		}
	}()
	for len(d.DrawPile) > 0 {
		last := len(d.DrawPile) - 1
		card := d.DrawPile[last]
		d.DrawPile = d.DrawPile[:last]
		if card.Color == models.Wild {
			rejected = append(rejected, card)
			continue
		}
		d.DiscardPile = []*models.Card{card}
		return nil
	}
	return fmt.Errorf("no colored card for the initial discard: %w", ErrEmptyDeck)
}

// Size is the number of cards across both piles.
func (d *Deck) Size() int {
	return len(d.DrawPile) + len(d.DiscardPile)
}

// cardKey identifies a card in the standard multiset. Wild kinds are keyed
// without their resolved color.
type cardKey struct {
	color  models.Color
	kind   models.Kind
	number int
}

func keyOf(c *models.Card) cardKey {
	if c.Kind.IsWild() {
		return cardKey{color: models.Wild, kind: c.Kind}
	}
	return cardKey{color: c.Color, kind: c.Kind, number: c.Number}
}

// RebuildDeck reconstructs a deck from a restored discard pile and hands. The
// draw pile is the standard set minus every card already in play, shuffled.
func RebuildDeck(rng *rand.Rand, discard []*models.Card, hands ...[]*models.Card) (*Deck, error) {
	remaining := make(map[cardKey][]*models.Card)
	for _, c := range StandardCards() {
		k := keyOf(c)
		remaining[k] = append(remaining[k], c)
	}
	take := func(c *models.Card) error {
		k := keyOf(c)
		if len(remaining[k]) == 0 {
			return fmt.Errorf("too many copies of %s", c)
		}
		remaining[k] = remaining[k][1:]
		return nil
	}
	for _, c := range discard {
		if err := take(c); err != nil {
			return nil, err
		}
	}
	for _, hand := range hands {
		for _, c := range hand {
			if err := take(c); err != nil {
				return nil, err
			}
		}
	}

	d := &Deck{DiscardPile: append([]*models.Card{}, discard...), rng: rng}
	// Walk the standard order so the pre-shuffle draw pile is deterministic.
	for _, c := range StandardCards() {
		k := keyOf(c)
		if len(remaining[k]) > 0 {
			d.DrawPile = append(d.DrawPile, remaining[k][0])
			remaining[k] = remaining[k][1:]
		}
	}
	d.Shuffle()
	return d, nil
}
