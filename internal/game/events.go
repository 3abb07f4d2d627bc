// internal/game/events.go
package game

import "github.com/jason-s-yu/uno/internal/models"

// GameEventType is an enum-like type for broadcasting game actions.
type GameEventType string

// --- Event Type Definitions ---
const (
	EventGameStart           GameEventType = "game_start"
	EventGamePlayerTurn      GameEventType = "game_player_turn"      // whose turn it is, with the table view
	EventPlayerPlayCard      GameEventType = "player_play_card"      // card placed on the discard pile
	EventPlayerSpecialEffect GameEventType = "player_special_effect" // skip, reverse or penalty resolved
	EventPlayerDraw          GameEventType = "player_draw"           // cards taken from the draw pile
	EventPlayerDrawFailed    GameEventType = "player_draw_failed"    // both piles exhausted
	EventPlayerWildColor     GameEventType = "player_wild_color"     // wild resolved to a color
	EventPlayerUno           GameEventType = "player_uno"            // one card left
	EventPlayerPlayRejected  GameEventType = "player_play_rejected"  // illegal selection, nothing changed
	EventReshuffleDiscard    GameEventType = "game_reshuffle_discard"
	EventGameSaved           GameEventType = "game_saved"
	EventGameSaveFailed      GameEventType = "game_save_failed"
	EventGameStats           GameEventType = "game_stats"
	EventGameEnd             GameEventType = "game_end"
	EventAchievementUnlocked GameEventType = "achievement_unlocked"
)

// GameEvent holds data about an event in a consistent format for display and journaling.
type GameEvent struct {
	Type   GameEventType `json:"type"`
	Player string        `json:"player,omitempty"`
	Card   *models.Card  `json:"card,omitempty"`

	// Cards is set on private draw events for human players.
	Cards []*models.Card `json:"cards,omitempty"`

	// Payload carries miscellaneous fields.
	Payload map[string]interface{} `json:"payload,omitempty"`

	// State is attached to turn events.
	State *TableView `json:"state,omitempty"`
}

// GameResult is handed to OnGameEnd once a hand has emptied.
type GameResult struct {
	Winner     string
	RoundScore int
	Scores     map[string]int
	Stats      Stats
}

// OnGameEndFunc handles a finished game, e.g. persisting the result.
type OnGameEndFunc func(result GameResult)
