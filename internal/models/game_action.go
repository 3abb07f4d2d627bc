package models

// ActionType is what a human player asked to do on their turn.
type ActionType string

const (
	ActionPlay  ActionType = "action_play"
	ActionDraw  ActionType = "action_draw"
	ActionSave  ActionType = "action_save"
	ActionStats ActionType = "action_stats"
	ActionQuit  ActionType = "action_quit"
)

// Action captures a human player's in-game move. Index is the hand position for ActionPlay.
type Action struct {
	Type  ActionType `json:"action_type"`
	Index int        `json:"index,omitempty"`
}

func PlayAction(index int) Action {
	return Action{Type: ActionPlay, Index: index}
}

// ConsumesTurn is false for actions that leave the player on the same turn.
func (a Action) ConsumesTurn() bool {
	return a.Type == ActionPlay || a.Type == ActionDraw
}
