package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	g, _ := setupTestGame(t, 4)
	for i := 0; i < 6 && !g.GameOver; i++ {
		require.NoError(t, g.PlayTurn(context.Background()))
	}
	g.Scores["P2"] = 31
	g.Achievements = NewAchievements(AchievementFirstWin)

	snap := g.Snapshot()
	restored, err := Restore(&snap, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, g.Difficulty, restored.Difficulty)
	assert.Equal(t, g.Stats, restored.Stats)
	assert.True(t, restored.Achievements.Unlocked(AchievementFirstWin))
	assert.True(t, restored.Started)
	assertConserved(t, restored)
}

func TestSnapshotIsDetached(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	snap := g.Snapshot()
	snap.Players[0].Hand[0].Number = 99
	assert.NotEqual(t, 99, g.Players[0].Hand[0].Number)
}

func TestRestoreKeepsResolvedTop(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	snap := g.Snapshot()
	top := models.NewWildCard(models.KindWild)
	top.Color = models.Yellow
	snap.DiscardPile = []*models.Card{top}

	restored, err := Restore(&snap, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Yellow, restored.Deck.Top().Color)
	assertConserved(t, restored)
}

func TestRestoreRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *save.Payload)
	}{
		{"direction", func(p *save.Payload) { p.Direction = 0 }},
		{"index high", func(p *save.Payload) { p.CurrentPlayer = len(p.Players) }},
		{"index negative", func(p *save.Payload) { p.CurrentPlayer = -1 }},
		{"single player", func(p *save.Payload) { p.Players = p.Players[:1] }},
		{"duplicate name", func(p *save.Payload) { p.Players[1].Name = p.Players[0].Name }},
		{"empty discard", func(p *save.Payload) { p.DiscardPile = nil }},
		{"unresolved top", func(p *save.Payload) {
			p.DiscardPile = append(p.DiscardPile, models.NewWildCard(models.KindWild))
		}},
		{"difficulty", func(p *save.Payload) { p.Difficulty = "impossible" }},
		{"duplicate card", func(p *save.Payload) {
			p.DiscardPile = append(p.DiscardPile, models.NewNumberCard(models.Red, 0), models.NewNumberCard(models.Red, 0))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := setupTestGame(t, 3)
			snap := g.Snapshot()
			tt.mutate(&snap)

			_, err := Restore(&snap, nil)
			assert.ErrorIs(t, err, save.ErrInvalidSaveFormat)
		})
	}
}
