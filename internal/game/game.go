// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
	"github.com/sirupsen/logrus"
)

// Strategy picks which legal card an AI plays. It returns nil when nothing in
// hand is legal on top.
type Strategy interface {
	Choose(hand []*models.Card, top *models.Card, opponents map[string]int) *models.Card
}

// HumanInput is the blocking collaborator that asks a human for decisions.
type HumanInput interface {
	NextAction(ctx context.Context, p *models.Player, top *models.Card) (models.Action, error)
	ChooseColor(ctx context.Context, p *models.Player) (models.Color, error)
	ConfirmPlayDrawn(ctx context.Context, p *models.Player, c *models.Card) (bool, error)
}

// Saver persists a snapshot and returns its identifier.
type Saver interface {
	Save(p save.Payload) (string, error)
}

// ErrNoSaver is returned by SaveGame when no Saver is configured.
var ErrNoSaver = errors.New("no save manager configured")

// UnoGame holds the entire state for a single game in memory. It is owned by
// one goroutine; nothing here is safe for concurrent use.
type UnoGame struct {
	ID         uuid.UUID
	Difficulty models.Difficulty
	Rules      models.HouseRules

	Players []*models.Player
	Deck    *Deck

	// Turn logic
	CurrentPlayerIndex int
	Direction          int // +1 or -1

	Scores       map[string]int
	Stats        Stats
	Achievements *Achievements

	Started  bool
	GameOver bool
	Quit     bool
	ended    bool

	// Strategy chooses cards for every AI seat.
	Strategy Strategy
	// Input is asked for every human decision.
	Input HumanInput
	// Saver handles save requests made during a human turn.
	Saver Saver

	// BroadcastFn is used to notify the display. If nil, no broadcast is done.
	BroadcastFn func(ev GameEvent)

	// OnGameEnd is invoked once the winner has been scored.
	OnGameEnd OnGameEndFunc

	Log *logrus.Entry
	rng *rand.Rand
}

// NewUnoGame builds a game for the given roster with a fresh, unshuffled deck.
// A nil rng is replaced by a time-seeded source.
func NewUnoGame(rules models.HouseRules, difficulty models.Difficulty, rng *rand.Rand) (*UnoGame, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &UnoGame{
		ID:                 uuid.New(),
		Difficulty:         difficulty,
		Rules:              rules,
		Deck:               NewDeck(rng),
		CurrentPlayerIndex: 0,
		Direction:          1,
		Scores:             make(map[string]int, len(rules.Roster)),
		Achievements:       NewAchievements(),
		rng:                rng,
	}
	for _, seat := range rules.Roster {
		g.Players = append(g.Players, models.NewPlayer(seat.Name, seat.IsAI))
		g.Scores[seat.Name] = 0
	}
	g.init()
	return g, nil
}

// init wires the logger and the deck reshuffle hook. Shared by NewUnoGame and Restore.
func (g *UnoGame) init() {
	if g.Log == nil {
		g.Log = logrus.WithField("game_id", g.ID)
	}
	g.Deck.OnReshuffle = func(drawSize int) {
		g.Log.WithField("draw_pile", drawSize).Debug("reshuffled discard pile into draw pile")
		g.fireEvent(GameEvent{
			Type:    EventReshuffleDiscard,
			Payload: map[string]interface{}{"drawPileSize": drawSize},
		})
	}
}

// Start shuffles, deals HandSize cards to each player in turn and turns up the
// initial discard.
func (g *UnoGame) Start() error {
	if g.Started {
		return nil
	}
	g.Deck.Shuffle()
	for i := 0; i < g.Rules.HandSize; i++ {
		for _, p := range g.Players {
			card, err := g.Deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing: %w", err)
			}
			p.AddCard(card)
		}
	}
	if err := g.Deck.SetupInitialDiscard(); err != nil {
		return err
	}
	g.Stats.ObserveHands(g.Players)
	g.Started = true

	g.Log.WithFields(logrus.Fields{
		"players":    len(g.Players),
		"difficulty": g.Difficulty,
		"top":        g.Deck.Top().String(),
	}).Info("game started")
	g.fireEvent(GameEvent{
		Type: EventGameStart,
		Card: g.Deck.Top(),
		Payload: map[string]interface{}{
			"difficulty": string(g.Difficulty),
		},
	})
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (g *UnoGame) CurrentPlayer() *models.Player {
	return g.Players[g.CurrentPlayerIndex]
}

// IsGameOver is true once any hand is empty.
func (g *UnoGame) IsGameOver() bool {
	for _, p := range g.Players {
		if p.HandSize() == 0 {
			return true
		}
	}
	return false
}

// Run plays turns until a hand empties or a human quits, then scores the game.
// The result is nil when the session ended by quitting.
func (g *UnoGame) Run(ctx context.Context) (*GameResult, error) {
	if err := g.Start(); err != nil {
		return nil, err
	}
	for !g.GameOver && !g.Quit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.PlayTurn(ctx); err != nil {
			return nil, err
		}
	}
	if g.Quit {
		g.Log.Info("game quit by player")
		return nil, nil
	}
	res, err := g.EndGame()
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// PlayTurn runs the current player's turn and then performs the unconditional
// advance, unless the player quit.
func (g *UnoGame) PlayTurn(ctx context.Context) error {
	if g.GameOver {
		return ErrGameOver
	}
	p := g.CurrentPlayer()
	g.broadcastPlayerTurn(p)

	if p.IsAI {
		g.playAITurn(p)
	} else {
		if err := g.playHumanTurn(ctx, p); err != nil {
			return err
		}
		if g.Quit {
			return nil
		}
	}

	g.Stats.RecordTurn()
	g.advanceTurn()
	g.GameOver = g.IsGameOver()
	return nil
}

// broadcastPlayerTurn notifies the display whose turn it is now.
func (g *UnoGame) broadcastPlayerTurn(p *models.Player) {
	reveal := ""
	if !p.IsAI {
		reveal = p.Name
	}
	view := g.View(reveal)
	g.Log.WithFields(logrus.Fields{
		"player": p.Name,
		"hand":   p.HandSize(),
		"turn":   g.Stats.TurnsPlayed(),
	}).Debug("turn starting")
	g.fireEvent(GameEvent{
		Type:   EventGamePlayerTurn,
		Player: p.Name,
		Card:   g.Deck.Top(),
		State:  &view,
		Payload: map[string]interface{}{
			"turn": g.Stats.TurnsPlayed(),
		},
	})
}

// advanceTurn moves the turn pointer one step in the current direction.
func (g *UnoGame) advanceTurn() {
	g.CurrentPlayerIndex = step(g.CurrentPlayerIndex, g.Direction, 1, len(g.Players))
}

// playAITurn plays a strategy-chosen legal card, or draws one and plays it only
// if it is legal.
func (g *UnoGame) playAITurn(p *models.Player) {
	top := g.Deck.Top()
	playable := p.PlayableCards(top)

	if len(playable) == 0 {
		drawn := g.drawInto(p, 1)
		if len(drawn) == 0 {
			return
		}
		if card := drawn[0]; models.CanPlay(card, top) {
			g.mustPlay(p, card, g.aiColor(p, card))
		}
		return
	}

	var choice *models.Card
	if g.Strategy != nil {
		choice = g.Strategy.Choose(p.Hand, top, g.OpponentHandSizes(p))
	}
	if choice == nil || !p.Holds(choice) || !models.CanPlay(choice, top) {
		if g.Strategy != nil {
			g.Log.WithField("player", p.Name).Warn("strategy returned no legal card; playing first legal card")
		}
		choice = playable[0]
	}
	g.mustPlay(p, choice, g.aiColor(p, choice))
}

// mustPlay plays a card already known to be legal.
func (g *UnoGame) mustPlay(p *models.Player, card *models.Card, color models.Color) {
	if err := g.playCard(p, card, color); err != nil {
		g.Log.WithError(err).WithField("player", p.Name).Error("AI play rejected")
	}
}

// aiColor picks the most frequent color left in hand after card is played,
// red when no colored card remains.
func (g *UnoGame) aiColor(p *models.Player, card *models.Card) models.Color {
	if !card.Kind.IsWild() {
		return ""
	}
	counts := make(map[models.Color]int, len(models.Colors))
	for _, c := range p.Hand {
		if c != card && c.Color != models.Wild {
			counts[c.Color]++
		}
	}
	best, bestCount := models.Red, 0
	for _, color := range models.Colors {
		if counts[color] > bestCount {
			best, bestCount = color, counts[color]
		}
	}
	return best
}

// playHumanTurn solicits actions until the turn is consumed or the player quits.
// Save and stats requests keep the player on the same turn.
func (g *UnoGame) playHumanTurn(ctx context.Context, p *models.Player) error {
	for {
		top := g.Deck.Top()
		action, err := g.Input.NextAction(ctx, p, top)
		if err != nil {
			return err
		}
		if !action.ConsumesTurn() {
			if g.runCommand(p, action) {
				return nil
			}
			continue
		}

		switch action.Type {
		case models.ActionDraw:
			drawn := g.drawInto(p, 1)
			if len(drawn) == 0 {
				return nil
			}
			card := drawn[0]
			if !models.CanPlay(card, top) {
				return nil
			}
			ok, err := g.Input.ConfirmPlayDrawn(ctx, p, card)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			color, err := g.humanColor(ctx, p, card)
			if err != nil {
				return err
			}
			return g.playCard(p, card, color)

		case models.ActionPlay:
			if action.Index < 0 || action.Index >= p.HandSize() {
				g.rejectPlay(p, nil, fmt.Errorf("%w: no card at position %d", ErrIllegalPlay, action.Index+1))
				continue
			}
			card := p.Hand[action.Index]
			if !models.CanPlay(card, top) {
				g.rejectPlay(p, card, fmt.Errorf("%w: %s cannot be played on %s", ErrIllegalPlay, card, top))
				continue
			}
			color, err := g.humanColor(ctx, p, card)
			if err != nil {
				return err
			}
			if err := g.playCard(p, card, color); err != nil {
				g.rejectPlay(p, card, err)
				continue
			}
			return nil
		}
	}
}

// runCommand handles the actions that leave the player on the same turn. It
// reports whether the player left the game.
func (g *UnoGame) runCommand(p *models.Player, action models.Action) bool {
	switch action.Type {
	case models.ActionQuit:
		g.Quit = true
		return true

	case models.ActionSave:
		if id, err := g.SaveGame(); err == nil {
			g.Log.WithFields(logrus.Fields{"player": p.Name, "save": id}).Debug("save requested")
		}

	case models.ActionStats:
		g.fireEvent(GameEvent{
			Type:    EventGameStats,
			Player:  p.Name,
			Payload: statsPayload(&g.Stats),
		})

	default:
		g.rejectPlay(p, nil, fmt.Errorf("%w: unknown action %q", ErrIllegalPlay, action.Type))
	}
	return false
}

// humanColor asks for a concrete color when card is a wild, repeating on invalid answers.
func (g *UnoGame) humanColor(ctx context.Context, p *models.Player, card *models.Card) (models.Color, error) {
	if !card.Kind.IsWild() {
		return "", nil
	}
	for {
		color, err := g.Input.ChooseColor(ctx, p)
		if err != nil {
			return "", err
		}
		if isConcrete(color) {
			return color, nil
		}
		g.rejectPlay(p, card, fmt.Errorf("%w: %q is not a color choice", ErrIllegalPlay, color))
	}
}

func isConcrete(c models.Color) bool {
	return c.Valid() && c != models.Wild
}

func (g *UnoGame) rejectPlay(p *models.Player, card *models.Card, reason error) {
	g.Log.WithField("player", p.Name).WithError(reason).Debug("play rejected")
	g.fireEvent(GameEvent{
		Type:    EventPlayerPlayRejected,
		Player:  p.Name,
		Card:    card,
		Payload: map[string]interface{}{"reason": reason.Error()},
	})
}

// playCard moves card from p's hand to the discard pile, records stats,
// resolves a wild to color and runs the card effect. Every check happens
// before the first mutation.
func (g *UnoGame) playCard(p *models.Player, card *models.Card, color models.Color) error {
	top := g.Deck.Top()
	if !p.Holds(card) {
		return fmt.Errorf("%w: %s does not hold %s", ErrIllegalPlay, p.Name, card)
	}
	if !models.CanPlay(card, top) {
		return fmt.Errorf("%w: %s cannot be played on %s", ErrIllegalPlay, card, top)
	}
	if card.Kind.IsWild() && !isConcrete(color) {
		return fmt.Errorf("%w: wild needs a color, got %q", ErrIllegalPlay, color)
	}

	p.RemoveCard(card)
	g.Deck.Discard(card)
	g.Stats.RecordPlay(card)
	g.Stats.ObserveHands(g.Players)

	g.Log.WithFields(logrus.Fields{
		"player": p.Name,
		"card":   card.String(),
		"hand":   p.HandSize(),
	}).Debug("card played")
	g.fireEvent(GameEvent{
		Type:   EventPlayerPlayCard,
		Player: p.Name,
		Card:   card,
		Payload: map[string]interface{}{
			"handSize": p.HandSize(),
		},
	})

	if card.Kind.IsWild() {
		card.Color = color
		g.fireEvent(GameEvent{
			Type:    EventPlayerWildColor,
			Player:  p.Name,
			Card:    card,
			Payload: map[string]interface{}{"color": string(color)},
		})
	}

	if p.HandSize() == 1 {
		g.fireEvent(GameEvent{Type: EventPlayerUno, Player: p.Name})
	}

	if !p.IsAI && card.IsSpecial() {
		g.checkAchievement(p, AchievementSpecialMaster)
	}

	g.applyEffect(p, card)
	return nil
}

// drawInto moves up to n cards from the deck into p's hand and returns them.
// An exhausted deck stops the draw early and is reported to the display.
func (g *UnoGame) drawInto(p *models.Player, n int) []*models.Card {
	drawn := make([]*models.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := g.Deck.Draw()
		if err != nil {
			g.Log.WithField("player", p.Name).WithError(err).Warn("draw failed")
			g.fireEvent(GameEvent{
				Type:    EventPlayerDrawFailed,
				Player:  p.Name,
				Payload: map[string]interface{}{"requested": n, "drawn": len(drawn)},
			})
			break
		}
		p.AddCard(card)
		drawn = append(drawn, card)
	}
	if len(drawn) == 0 {
		return drawn
	}

	if !p.IsAI {
		g.Stats.RecordDraw(len(drawn))
	}
	g.Stats.ObserveHands(g.Players)

	ev := GameEvent{
		Type:   EventPlayerDraw,
		Player: p.Name,
		Payload: map[string]interface{}{
			"count":        len(drawn),
			"handSize":     p.HandSize(),
			"drawPileSize": len(g.Deck.DrawPile),
		},
	}
	if !p.IsAI {
		ev.Cards = drawn
	}
	g.fireEvent(ev)
	return drawn
}

// Winner returns the first player with an empty hand, or nil.
func (g *UnoGame) Winner() *models.Player {
	for _, p := range g.Players {
		if p.HandSize() == 0 {
			return p
		}
	}
	return nil
}

// RoundScore sums the points left in every opponent's hand.
func (g *UnoGame) RoundScore(winner *models.Player) int {
	score := 0
	for _, p := range g.Players {
		if p == winner {
			continue
		}
		for _, c := range p.Hand {
			score += c.Points()
		}
	}
	return score
}

// EndGame scores the winner, checks win achievements and calls OnGameEnd.
// Calling it again returns the same totals without re-scoring.
func (g *UnoGame) EndGame() (GameResult, error) {
	winner := g.Winner()
	if winner == nil {
		return GameResult{}, errors.New("end game: no player has emptied their hand")
	}
	g.GameOver = true

	if g.ended {
		return GameResult{Winner: winner.Name, Scores: copyScores(g.Scores), Stats: g.Stats}, nil
	}
	g.ended = true

	round := g.RoundScore(winner)
	g.Scores[winner.Name] += round

	if !winner.IsAI {
		g.Stats.RecordWin()
		for _, id := range []string{AchievementFirstWin, AchievementPerfectGame, AchievementComeback} {
			g.checkAchievement(winner, id)
		}
	}

	result := GameResult{
		Winner:     winner.Name,
		RoundScore: round,
		Scores:     copyScores(g.Scores),
		Stats:      g.Stats,
	}

	g.Log.WithFields(logrus.Fields{
		"winner": winner.Name,
		"points": round,
		"turns":  g.Stats.TurnsPlayed(),
	}).Info("game over")
	g.fireEvent(GameEvent{
		Type:   EventGameEnd,
		Player: winner.Name,
		Payload: map[string]interface{}{
			"roundScore": round,
			"scores":     result.Scores,
		},
	})

	if g.OnGameEnd != nil {
		g.OnGameEnd(result)
	}
	return result, nil
}

// checkAchievement unlocks id for a human player and notifies the display.
func (g *UnoGame) checkAchievement(p *models.Player, id string) {
	if !g.Achievements.Check(id, &g.Stats) {
		return
	}
	ach, _ := LookupAchievement(id)
	g.Log.WithFields(logrus.Fields{"player": p.Name, "achievement": id}).Info("achievement unlocked")
	g.fireEvent(GameEvent{
		Type:   EventAchievementUnlocked,
		Player: p.Name,
		Payload: map[string]interface{}{
			"id":          ach.ID,
			"name":        ach.Name,
			"description": ach.Description,
		},
	})
}

// SaveGame persists the current state through Saver. A failure is reported to
// the display and returned; the game carries on unsaved.
func (g *UnoGame) SaveGame() (string, error) {
	if g.Saver == nil {
		g.fireEvent(GameEvent{Type: EventGameSaveFailed, Payload: map[string]interface{}{"error": ErrNoSaver.Error()}})
		return "", ErrNoSaver
	}
	id, err := g.Saver.Save(g.Snapshot())
	if err != nil {
		g.Log.WithError(err).Error("save failed")
		g.fireEvent(GameEvent{Type: EventGameSaveFailed, Payload: map[string]interface{}{"error": err.Error()}})
		return "", err
	}
	g.Log.WithField("save", id).Info("game saved")
	g.fireEvent(GameEvent{Type: EventGameSaved, Payload: map[string]interface{}{"id": id}})
	return id, nil
}

// fireEvent notifies the display. Display callbacks never affect state.
func (g *UnoGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

func statsPayload(s *Stats) map[string]interface{} {
	m := s.Map()
	payload := make(map[string]interface{}, len(m))
	for k, v := range m {
		payload[k] = v
	}
	return payload
}

func copyScores(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
