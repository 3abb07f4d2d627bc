package game

import "sort"

// Achievement identifiers.
const (
	AchievementFirstWin      = "first_win"
	AchievementPerfectGame   = "perfect_game"
	AchievementComeback      = "comeback"
	AchievementSpecialMaster = "special_master"
)

// Achievement describes an unlockable milestone.
type Achievement struct {
	ID          string
	Name        string
	Description string
	met         func(s *Stats) bool
}

var catalog = []Achievement{
	{
		ID:          AchievementFirstWin,
		Name:        "First Success",
		Description: "Win your first game",
		met:         func(s *Stats) bool { return s.GamesWon() == 1 },
	},
	{
		ID:          AchievementPerfectGame,
		Name:        "Perfect Game",
		Description: "Win without drawing a card",
		met:         func(s *Stats) bool { return s.CardsDrawn() == 0 },
	},
	{
		ID:          AchievementComeback,
		Name:        "Comeback",
		Description: "Win after holding 10 or more cards",
		met:         func(s *Stats) bool { return s.MaxCardsInHand() >= 10 },
	},
	{
		ID:          AchievementSpecialMaster,
		Name:        "Special Card Master",
		Description: "Play 5 special cards in a game",
		met:         func(s *Stats) bool { return s.SpecialCardsPlayed() >= 5 },
	},
}

// LookupAchievement returns the catalog entry for id.
func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Achievements is the set of unlocked milestones for one game.
type Achievements struct {
	unlocked map[string]bool
}

func NewAchievements(ids ...string) *Achievements {
	a := &Achievements{unlocked: make(map[string]bool)}
	for _, id := range ids {
		if _, ok := LookupAchievement(id); ok {
			a.unlocked[id] = true
		}
	}
	return a
}

// Check unlocks id if its condition holds. Returns true only on the first unlock.
func (a *Achievements) Check(id string, s *Stats) bool {
	if a.unlocked[id] {
		return false
	}
	ach, ok := LookupAchievement(id)
	if !ok || !ach.met(s) {
		return false
	}
	a.unlocked[id] = true
	return true
}

func (a *Achievements) Unlocked(id string) bool {
	return a.unlocked[id]
}

// IDs returns the unlocked identifiers sorted.
func (a *Achievements) IDs() []string {
	ids := make([]string, 0, len(a.unlocked))
	for id := range a.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
