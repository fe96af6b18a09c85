package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeForcedFirst(t *testing.T) {
	tests := []struct {
		coin Coin
		turn Turn
		want bool
	}{
		{CoinTails, TurnFirst, true},
		{CoinTails, TurnSecond, false},
		{CoinHeads, TurnFirst, false},
		{CoinHeads, TurnSecond, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.coin)+"/"+string(tt.turn), func(t *testing.T) {
			rec := MatchRecord{Coin: tt.coin, Turn: tt.turn, ForcedFirst: !tt.want}
			rec.RecomputeForcedFirst()
			assert.Equal(t, tt.want, rec.ForcedFirst)
		})
	}
}

func TestRecordUpdateApply(t *testing.T) {
	rec := MatchRecord{
		ID:     7,
		MyDeck: "A",
		Coin:   CoinHeads,
		Turn:   TurnSecond,
		Season: "S38",
	}

	coin := CoinTails
	turn := TurnFirst
	note := "opened 5 hand traps"
	RecordUpdate{Coin: &coin, Turn: &turn, Note: &note}.Apply(&rec)

	assert.Equal(t, 7, rec.ID)
	assert.Equal(t, "A", rec.MyDeck)
	assert.Equal(t, "S38", rec.Season)
	assert.Equal(t, note, rec.Note)
	assert.True(t, rec.ForcedFirst)
}

func TestParseEnums(t *testing.T) {
	r, ok := ParseResult(" Win ")
	assert.True(t, ok)
	assert.Equal(t, ResultWin, r)

	_, ok = ParseResult("draw")
	assert.False(t, ok)

	turn, ok := ParseTurn("second")
	assert.True(t, ok)
	assert.Equal(t, TurnSecond, turn)

	coin, ok := ParseCoin("")
	assert.True(t, ok)
	assert.Equal(t, CoinHeads, coin)

	_, ok = ParseCoin("edge")
	assert.False(t, ok)
}
