package stats

import (
	"fmt"
	"sort"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// StreakStats represents win/loss streak information.
type StreakStats struct {
	CurrentStreak     int `json:"current_streak"` // Positive = wins, negative = losses, 0 = no games
	LongestWinStreak  int `json:"longest_win_streak"`
	LongestLossStreak int `json:"longest_loss_streak"`
}

// CalculateStreaks calculates win/loss streak statistics from a list of records.
// Records are walked in id order, which is the order they were entered.
func CalculateStreaks(recs []models.MatchRecord) StreakStats {
	var stats StreakStats
	if len(recs) == 0 {
		return stats
	}

	ordered := make([]models.MatchRecord, len(recs))
	copy(ordered, recs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	currentWinStreak := 0
	currentLossStreak := 0

	for _, rec := range ordered {
		if rec.IsWin() {
			currentWinStreak++
			currentLossStreak = 0
			if currentWinStreak > stats.LongestWinStreak {
				stats.LongestWinStreak = currentWinStreak
			}
			continue
		}

		currentLossStreak++
		currentWinStreak = 0
		if currentLossStreak > stats.LongestLossStreak {
			stats.LongestLossStreak = currentLossStreak
		}
	}

	if currentWinStreak > 0 {
		stats.CurrentStreak = currentWinStreak
	} else {
		stats.CurrentStreak = -currentLossStreak
	}

	return stats
}

// FormatCurrentStreak returns a human-readable string for the current streak.
func FormatCurrentStreak(streak int) string {
	if streak == 0 {
		return "No active streak"
	}
	if streak > 0 {
		if streak == 1 {
			return "1 win streak"
		}
		return fmt.Sprintf("%d win streak", streak)
	}
	absStreak := -streak
	if absStreak == 1 {
		return "1 loss streak"
	}
	return fmt.Sprintf("%d loss streak", absStreak)
}
