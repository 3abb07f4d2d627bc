package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanPlay(t *testing.T) {
	top := NewNumberCard(Red, 5)

	tests := []struct {
		name      string
		candidate *Card
		top       *Card
		want      bool
	}{
		{"same color", NewNumberCard(Red, 7), top, true},
		{"same number", NewNumberCard(Blue, 5), top, true},
		{"different color and number", NewNumberCard(Blue, 3), top, false},
		{"wild on number", NewWildCard(KindWild), top, true},
		{"wild draw four on number", NewWildCard(KindWildDrawFour), top, true},
		{"same action kind", NewActionCard(Green, KindSkip), NewActionCard(Red, KindSkip), true},
		{"different action kind", NewActionCard(Green, KindSkip), NewActionCard(Red, KindReverse), false},
		{"action on same color number", NewActionCard(Red, KindDrawTwo), top, true},
		{"number on resolved wild", NewNumberCard(Yellow, 1), &Card{Color: Yellow, Kind: KindWild}, true},
		{"number on other resolved wild", NewNumberCard(Blue, 1), &Card{Color: Yellow, Kind: KindWild}, false},
		{"number zero matches zero", NewNumberCard(Green, 0), NewNumberCard(Blue, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlay(tt.candidate, tt.top))
		})
	}
}

func TestWildAlwaysPlayable(t *testing.T) {
	tops := []*Card{
		NewNumberCard(Red, 0),
		NewActionCard(Blue, KindReverse),
		NewActionCard(Yellow, KindDrawTwo),
		{Color: Green, Kind: KindWildDrawFour},
	}
	for _, top := range tops {
		assert.True(t, CanPlay(NewWildCard(KindWild), top), "wild on %s", top)
		assert.True(t, CanPlay(NewWildCard(KindWildDrawFour), top), "+4 on %s", top)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewNumberCard(Red, 9).Validate())
	assert.NoError(t, NewWildCard(KindWild).Validate())
	assert.NoError(t, (&Card{Color: Blue, Kind: KindWildDrawFour}).Validate())

	assert.ErrorIs(t, NewNumberCard(Red, 10).Validate(), ErrInvalidCard)
	assert.ErrorIs(t, (&Card{Color: Wild, Kind: KindSkip}).Validate(), ErrInvalidCard)
	assert.ErrorIs(t, (&Card{Color: "purple", Kind: KindSkip}).Validate(), ErrInvalidCard)
	assert.ErrorIs(t, (&Card{Color: Red, Kind: "shuffle"}).Validate(), ErrInvalidCard)
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(NewNumberCard(Green, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"green","kind":"number","number":0}`, string(data))

	data, err = json.Marshal(NewActionCard(Red, KindSkip))
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"red","kind":"skip"}`, string(data))

	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"color":"blue","kind":"wild"}`), &c))
	assert.Equal(t, Card{Color: Blue, Kind: KindWild}, c)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"color":"red","kind":"number"}`), &c), ErrInvalidCard)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"color":"red","kind":"skip","number":3}`), &c), ErrInvalidCard)
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 7, NewNumberCard(Red, 7).Points())
	assert.Equal(t, 20, NewActionCard(Red, KindReverse).Points())
	assert.Equal(t, 50, NewWildCard(KindWildDrawFour).Points())
}

func TestPlayerRemoveCardByInstance(t *testing.T) {
	p := NewPlayer("Ann", false)
	a := NewNumberCard(Red, 3)
	b := NewNumberCard(Red, 3)
	p.AddCard(a)
	p.AddCard(b)

	require.True(t, p.RemoveCard(b))
	require.Len(t, p.Hand, 1)
	assert.Same(t, a, p.Hand[0])
	assert.False(t, p.RemoveCard(b))
}

func TestActionConsumesTurn(t *testing.T) {
	assert.True(t, PlayAction(2).ConsumesTurn())
	assert.True(t, Action{Type: ActionDraw}.ConsumesTurn())
	for _, at := range []ActionType{ActionSave, ActionStats, ActionQuit} {
		assert.False(t, Action{Type: at}.ConsumesTurn(), at)
	}
}

func TestHasPlayableCard(t *testing.T) {
	p := NewPlayer("Ann", false)
	p.AddCard(NewNumberCard(Blue, 1))
	top := NewNumberCard(Red, 3)
	assert.False(t, p.HasPlayableCard(top))

	p.AddCard(NewWildCard(KindWild))
	assert.True(t, p.HasPlayableCard(top))
}

func TestIsResolved(t *testing.T) {
	w := NewWildCard(KindWild)
	assert.False(t, w.IsResolved())
	w.Color = Green
	assert.True(t, w.IsResolved())
	w.ResetWild()
	assert.False(t, w.IsResolved())
}

func TestHouseRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultHouseRules().Validate())

	r := DefaultHouseRules()
	r.Roster = r.Roster[:1]
	assert.ErrorIs(t, r.Validate(), ErrInvalidRules)

	r = HouseRules{HandSize: 7, Roster: []Seat{{Name: "A"}, {Name: "A", IsAI: true}}}
	assert.ErrorIs(t, r.Validate(), ErrInvalidRules)

	r = HouseRules{HandSize: 20, Roster: Roster("Me", 5)}
	assert.ErrorIs(t, r.Validate(), ErrInvalidRules)
}
