package facade

import (
	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/stats"
)

// StatsFacade computes statistics over the active season.
type StatsFacade struct {
	c *Controller
}

// Deck returns the statistics of deck in the active season. An empty deck
// yields all zeros.
func (f *StatsFacade) Deck(deck string) stats.DeckStatistics {
	active, recs := f.c.seasonRecords()
	return stats.ComputeDeckStatistics(recs, active, deck)
}

// Streaks returns the streaks of the active season, restricted to deck
// unless it is empty or AllFilter.
func (f *StatsFacade) Streaks(deck string) stats.StreakStats {
	active, recs := f.c.seasonRecords()
	return stats.CalculateStreaks(stats.VisibleRows(recs, active, deck, models.SortAscending))
}

// Opponents returns the opponent-deck distribution, filtered by rank prefix.
func (f *StatsFacade) Opponents(rankPrefix string) stats.Distribution {
	_, recs := f.c.seasonRecords()
	return stats.OpponentDistribution(recs, rankPrefix)
}

// Own returns the own-deck distribution.
func (f *StatsFacade) Own() stats.Distribution {
	_, recs := f.c.seasonRecords()
	return stats.OwnDistribution(recs)
}
