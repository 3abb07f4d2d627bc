package models

// Player holds a seat at the table and the cards in hand.
type Player struct {
	Name string  `json:"name"`
	Hand []*Card `json:"hand"`
	IsAI bool    `json:"is_ai"`
}

func NewPlayer(name string, isAI bool) *Player {
	return &Player{
		Name: name,
		Hand: []*Card{},
		IsAI: isAI,
	}
}

// AddCard appends c to the hand.
func (p *Player) AddCard(c *Card) {
	p.Hand = append(p.Hand, c)
}

// RemoveCard removes exactly the given card instance. Returns false if the
// player does not hold it.
func (p *Player) RemoveCard(c *Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// Holds reports whether the player holds the given card instance.
func (p *Player) Holds(c *Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

func (p *Player) HandSize() int {
	return len(p.Hand)
}

// PlayableCards returns the cards in hand that may be played on top, in hand order.
func (p *Player) PlayableCards(top *Card) []*Card {
	var playable []*Card
	for _, c := range p.Hand {
		if CanPlay(c, top) {
			playable = append(playable, c)
		}
	}
	return playable
}

func (p *Player) HasPlayableCard(top *Card) bool {
	for _, c := range p.Hand {
		if CanPlay(c, top) {
			return true
		}
	}
	return false
}
