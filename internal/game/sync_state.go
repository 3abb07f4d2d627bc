// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// SeatView represents the public state of one player. Hand is only filled for
// the player the view was built for.
type SeatView struct {
	Name          string         `json:"name"`
	IsAI          bool           `json:"is_ai"`
	HandSize      int            `json:"hand_size"`
	IsCurrentTurn bool           `json:"is_current_turn"`
	Hand          []*models.Card `json:"hand,omitempty"`
}

// TableView is what the display is allowed to see at the start of a turn.
type TableView struct {
	GameID        uuid.UUID    `json:"game_id"`
	CurrentPlayer string       `json:"current_player"`
	Direction     int          `json:"direction"`
	DrawPileSize  int          `json:"draw_pile_size"`
	DiscardSize   int          `json:"discard_size"`
	DiscardTop    *models.Card `json:"discard_top,omitempty"`
	Seats         []SeatView   `json:"seats"`
}

// View builds the table view, revealing the hand of forPlayer only.
func (g *UnoGame) View(forPlayer string) TableView {
	v := TableView{
		GameID:        g.ID,
		CurrentPlayer: g.CurrentPlayer().Name,
		Direction:     g.Direction,
		DrawPileSize:  len(g.Deck.DrawPile),
		DiscardSize:   len(g.Deck.DiscardPile),
		DiscardTop:    g.Deck.Top(),
		Seats:         make([]SeatView, 0, len(g.Players)),
	}
	for i, p := range g.Players {
		sv := SeatView{
			Name:          p.Name,
			IsAI:          p.IsAI,
			HandSize:      p.HandSize(),
			IsCurrentTurn: i == g.CurrentPlayerIndex,
		}
		if p.Name == forPlayer {
			sv.Hand = append([]*models.Card{}, p.Hand...)
		}
		v.Seats = append(v.Seats, sv)
	}
	return v
}

// OpponentHandSizes returns the hand size of everyone except player.
func (g *UnoGame) OpponentHandSizes(player *models.Player) map[string]int {
	sizes := make(map[string]int, len(g.Players)-1)
	for _, p := range g.Players {
		if p != player {
			sizes[p.Name] = p.HandSize()
		}
	}
	return sizes
}
