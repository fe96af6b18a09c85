package stats

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func makeHistory(n int) []models.MatchRecord {
	recs := make([]models.MatchRecord, n)
	for i := range recs {
		result, turn, coin := models.ResultWin, models.TurnFirst, models.CoinHeads
		if i%3 == 0 {
			result, turn, coin = models.ResultLoss, models.TurnSecond, models.CoinTails
		}
		r := rec(i, fmt.Sprintf("Deck %d", i%7), result, turn, coin)
		r.OppDeck = fmt.Sprintf("Opponent %d", i%25)
		if i%4 == 0 {
			r.Rank = "Master 1"
		}
		recs[i] = r
	}
	return recs
}

func BenchmarkStatistics(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		recs := makeHistory(n)

		b.Run(fmt.Sprintf("Deck/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := ComputeDeckStatistics(recs, "S38", "Deck 1")
				runtime.KeepAlive(s)
			}
		})

		b.Run(fmt.Sprintf("OpponentDistribution/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				d := OpponentDistribution(recs, "Master")
				runtime.KeepAlive(d)
			}
		})

		b.Run(fmt.Sprintf("VisibleRows/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				rows := VisibleRows(recs, "S38", models.AllFilter, models.SortDescending)
				runtime.KeepAlive(rows)
			}
		})
	}
}
