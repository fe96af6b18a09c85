package stats

import (
	"sort"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// VisibleRows returns the records of season in list order. When filterDeck
// is set and is not AllFilter only records played with that own-deck remain.
func VisibleRows(recs []models.MatchRecord, season, filterDeck string, order models.SortOrder) []models.MatchRecord {
	rows := make([]models.MatchRecord, 0, len(recs))
	for _, rec := range recs {
		if rec.Season != season {
			continue
		}
		if filterDeck != "" && filterDeck != models.AllFilter && rec.MyDeck != filterDeck {
			continue
		}
		rows = append(rows, rec)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if order == models.SortDescending {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}
