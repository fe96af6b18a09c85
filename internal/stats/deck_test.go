package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func rec(id int, deck string, result models.Result, turn models.Turn, coin models.Coin) models.MatchRecord {
	r := models.MatchRecord{
		ID:      id,
		MyDeck:  deck,
		OppDeck: "X",
		Result:  result,
		Turn:    turn,
		Coin:    coin,
		Rank:    "Gold 1",
		Season:  "S38",
	}
	r.RecomputeForcedFirst()
	return r
}

func TestPercent(t *testing.T) {
	tests := []struct {
		count, denom int
		want         float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{0, 7, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.count, tt.denom), "%d/%d", tt.count, tt.denom)
	}
}

func TestComputeDeckStatistics_SingleRecord(t *testing.T) {
	recs := []models.MatchRecord{rec(0, "A", models.ResultWin, models.TurnFirst, models.CoinTails)}

	s := ComputeDeckStatistics(recs, "S38", "A")

	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 100.0, s.WinRate)
	assert.Equal(t, 100.0, s.FirstTurnWinRate.Percent)
	assert.Equal(t, 100.0, s.TailsRate.Percent)
	assert.Equal(t, 0.0, s.HeadsRate.Percent)
	assert.Equal(t, 100.0, s.ForcedFirstRate.Percent)
}

func TestComputeDeckStatistics_NoFirstTurnGames(t *testing.T) {
	recs := []models.MatchRecord{
		rec(0, "A", models.ResultWin, models.TurnSecond, models.CoinHeads),
		rec(1, "A", models.ResultLoss, models.TurnSecond, models.CoinHeads),
	}

	s := ComputeDeckStatistics(recs, "S38", "A")

	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 0.0, s.FirstTurnWinRate.Percent)
	assert.Equal(t, 0, s.FirstTurnWinRate.Total)
	assert.Equal(t, 50.0, s.SecondTurnWinRate.Percent)
	assert.Equal(t, 2, s.SecondTurnWinRate.Total)
}

func TestComputeDeckStatistics_ScopesBySeasonAndDeck(t *testing.T) {
	other := rec(2, "A", models.ResultLoss, models.TurnFirst, models.CoinHeads)
	other.Season = "S37"
	recs := []models.MatchRecord{
		rec(0, "A", models.ResultWin, models.TurnFirst, models.CoinHeads),
		rec(1, "B", models.ResultLoss, models.TurnFirst, models.CoinHeads),
		other,
	}

	s := ComputeDeckStatistics(recs, "S38", "A")
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 100.0, s.WinRate)
}

func TestComputeDeckStatistics_HandTrapAndStuck(t *testing.T) {
	a := rec(0, "A", models.ResultWin, models.TurnFirst, models.CoinHeads)
	a.FirstMulliganHit = true
	b := rec(1, "A", models.ResultLoss, models.TurnFirst, models.CoinHeads)
	b.FirstMulliganHit = true
	b.ExpandedHandTrapHit = true
	b.CardStuck = true
	c := rec(2, "A", models.ResultLoss, models.TurnSecond, models.CoinHeads)

	s := ComputeDeckStatistics([]models.MatchRecord{a, b, c}, "S38", "A")

	assert.Equal(t, Ratio{Count: 1, Total: 2, Percent: 50}, s.FirstMulliganWinRate)
	assert.Equal(t, Ratio{Count: 0, Total: 1, Percent: 0}, s.ExpandedWinRate)
	assert.Equal(t, Ratio{Count: 1, Total: 3, Percent: 33.3}, s.CardStuckRate)
}

func TestComputeDeckStatistics_NoSelection(t *testing.T) {
	recs := []models.MatchRecord{rec(0, "A", models.ResultWin, models.TurnFirst, models.CoinTails)}

	s := ComputeDeckStatistics(recs, "S38", "")
	assert.Zero(t, s.Total)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.TailsRate.Percent)
}

func TestComputeDeckStatistics_RatesInRange(t *testing.T) {
	var recs []models.MatchRecord
	for i := 0; i < 50; i++ {
		result := models.ResultLoss
		if i%3 == 0 {
			result = models.ResultWin
		}
		turn := models.TurnSecond
		if i%2 == 0 {
			turn = models.TurnFirst
		}
		r := rec(i, "A", result, turn, models.CoinHeads)
		r.CardStuck = i%5 == 0
		recs = append(recs, r)
	}

	s := ComputeDeckStatistics(recs, "S38", "A")
	for _, p := range []float64{
		s.WinRate,
		s.FirstTurnWinRate.Percent,
		s.SecondTurnWinRate.Percent,
		s.HeadsRate.Percent,
		s.TailsRate.Percent,
		s.FirstMulliganWinRate.Percent,
		s.ExpandedWinRate.Percent,
		s.CardStuckRate.Percent,
	} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
	}
}
