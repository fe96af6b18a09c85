package stats

import (
	"sort"
	"strings"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// DeckCount is one slice of a distribution.
type DeckCount struct {
	Deck    string  `json:"deck"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Percent float64 `json:"percent"`
	WinRate float64 `json:"win_rate"`
}

// Distribution groups records by deck name. Slices are ordered by count
// ascending, ties broken by deck name.
type Distribution struct {
	Slices  []DeckCount `json:"slices"`
	Total   int         `json:"total"`
	Wins    int         `json:"wins"`
	WinRate float64     `json:"win_rate"`
}

// MatchesRank reports whether rank passes the prefix filter. AllFilter and
// the empty string pass everything.
func MatchesRank(rank, prefix string) bool {
	if prefix == "" || prefix == models.AllFilter {
		return true
	}
	return strings.HasPrefix(rank, prefix)
}

// OpponentDistribution groups recs by opponent deck after applying the rank
// prefix filter.
func OpponentDistribution(recs []models.MatchRecord, rankPrefix string) Distribution {
	filtered := make([]models.MatchRecord, 0, len(recs))
	for _, rec := range recs {
		if MatchesRank(rec.Rank, rankPrefix) {
			filtered = append(filtered, rec)
		}
	}
	return distribute(filtered, func(r models.MatchRecord) string { return r.OppDeck })
}

// OwnDistribution groups recs by own deck.
func OwnDistribution(recs []models.MatchRecord) Distribution {
	return distribute(recs, func(r models.MatchRecord) string { return r.MyDeck })
}

func distribute(recs []models.MatchRecord, key func(models.MatchRecord) string) Distribution {
	var dist Distribution
	groups := make(map[string]*DeckCount)

	for _, rec := range recs {
		name := key(rec)
		g, ok := groups[name]
		if !ok {
			g = &DeckCount{Deck: name}
			groups[name] = g
		}
		g.Count++
		dist.Total++
		if rec.IsWin() {
			g.Wins++
			dist.Wins++
		}
	}

	dist.Slices = make([]DeckCount, 0, len(groups))
	for _, g := range groups {
		g.Percent = Percent(g.Count, dist.Total)
		g.WinRate = Percent(g.Wins, g.Count)
		dist.Slices = append(dist.Slices, *g)
	}
	sort.Slice(dist.Slices, func(i, j int) bool {
		a, b := dist.Slices[i], dist.Slices[j]
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Deck < b.Deck
	})
	dist.WinRate = Percent(dist.Wins, dist.Total)

	return dist
}
