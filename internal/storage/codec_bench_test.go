package storage

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

var benchRanks = []string{"Gold 1", "Platinum 3", "Diamond 2", "Master 1"}

func makeRecord(id int) models.MatchRecord {
	rec := models.MatchRecord{
		ID:      id,
		MyDeck:  fmt.Sprintf("Deck %d", id%7),
		OppDeck: fmt.Sprintf("Opponent %d", id%25),
		Result:  models.ResultWin,
		Turn:    models.TurnFirst,
		Coin:    models.CoinHeads,
		Rank:    benchRanks[id%len(benchRanks)],
		Season:  fmt.Sprintf("S%d", 30+id%9),
	}
	if id%3 == 0 {
		rec.Result = models.ResultLoss
		rec.Turn = models.TurnSecond
		rec.Coin = models.CoinTails
		rec.CardStuck = true
	}
	if id%5 == 0 {
		rec.Note = "hand trap on turn one"
		rec.FirstMulliganHit = true
	}
	return rec
}

func makeDocument(n int) *Document {
	doc := DefaultDocument("S38")
	doc.Records = make([]models.MatchRecord, n)
	for i := range doc.Records {
		doc.Records[i] = makeRecord(i)
	}
	return doc
}

func sizeName(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprintf("%d", n)
}

func BenchmarkEncodeDocument(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		doc := makeDocument(n)
		b.Run(sizeName(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				data, _ := EncodeDocument(doc)
				runtime.KeepAlive(data)
			}
		})
	}
}

// BenchmarkDecodeDocument measures loading, which allocates every record.
func BenchmarkDecodeDocument(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		data, err := EncodeDocument(makeDocument(n))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(sizeName(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				doc, _ := DecodeDocument(data)
				runtime.KeepAlive(doc)
			}
		})
	}
}
