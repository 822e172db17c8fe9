package ledger

import "github.com/osse101/dropgame/internal/domain"

// Achievement is a badge earned from profile counters.
type Achievement struct {
	Key         string
	Name        string
	Emoji       string
	Description string
	earned      func(domain.Profile) bool
}

var achievements = []Achievement{
	{Key: "first_claim", Name: "First Claim", Emoji: "🎉", Description: "Claim your first reason",
		earned: func(p domain.Profile) bool { return p.TotalClaims >= 1 }},
	{Key: "collector", Name: "Collector", Emoji: "📚", Description: "Claim 25 reasons",
		earned: func(p domain.Profile) bool { return p.TotalClaims >= 25 }},
	{Key: "hoarder", Name: "Hoarder", Emoji: "🏛️", Description: "Claim 100 reasons",
		earned: func(p domain.Profile) bool { return p.TotalClaims >= 100 }},
	{Key: "first_win", Name: "It Worked", Emoji: "✅", Description: "Rate a reason as a win",
		earned: func(p domain.Profile) bool { return p.TotalWins >= 1 }},
	{Key: "on_fire", Name: "On Fire", Emoji: "🔥", Description: "Reach a win streak of 3",
		earned: func(p domain.Profile) bool { return p.Streak >= 3 }},
	{Key: "unstoppable", Name: "Unstoppable", Emoji: "⚡", Description: "Reach a win streak of 10",
		earned: func(p domain.Profile) bool { return p.Streak >= 10 }},
	{Key: "good_sport", Name: "Good Sport", Emoji: "🤝", Description: "Rate 10 reasons as a loss",
		earned: func(p domain.Profile) bool { return p.TotalLosses >= 10 }},
	{Key: "pickpocket", Name: "Pickpocket", Emoji: "🧤", Description: "Pull off a steal",
		earned: func(p domain.Profile) bool { return p.SuccessfulSteals >= 1 }},
	{Key: "master_thief", Name: "Master Thief", Emoji: "🦹", Description: "Pull off 10 steals",
		earned: func(p domain.Profile) bool { return p.SuccessfulSteals >= 10 }},
	{Key: "centurion", Name: "Centurion", Emoji: "💯", Description: "Hold 100 points",
		earned: func(p domain.Profile) bool { return p.Points >= 100 }},
}

// Achievements lists every badge p has earned, in catalogue order.
func Achievements(p domain.Profile) []Achievement {
	var out []Achievement
	for _, a := range achievements {
		if a.earned(p) {
			out = append(out, a)
		}
	}
	return out
}

// AllAchievements lists the whole catalogue.
func AllAchievements() []Achievement {
	return append([]Achievement(nil), achievements...)
}
