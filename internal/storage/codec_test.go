package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func sampleDocument() *Document {
	return &Document{
		MyDecks:  []string{"A", "B"},
		OppDecks: []string{"X", "Y"},
		Records: []models.MatchRecord{
			{
				ID: 0, MyDeck: "A", OppDeck: "X",
				Result: models.ResultWin, Turn: models.TurnFirst, Coin: models.CoinTails,
				Rank: "Gold 1", Season: "S38", ForcedFirst: true,
				FirstMulliganHit: true, Note: "close game",
			},
			{
				ID: 4, MyDeck: "B", OppDeck: "Y",
				Result: models.ResultLoss, Turn: models.TurnSecond, Coin: models.CoinHeads,
				Rank: "Master 2", Season: "S37", CardStuck: true, ExpandedHandTrapHit: true,
			},
		},
		CurrentSeason: "S38",
	}
}

func TestEncodeDocument_Layout(t *testing.T) {
	data, err := EncodeDocument(sampleDocument())
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "{\n    \"my_decks\": ["), "four-space indentation")
	for _, want := range []string{
		`"result": "勝"`, `"result": "敗"`,
		`"turn": "先手"`, `"turn": "後手"`,
		`"coin": "反面"`, `"coin": "正面"`,
		`"forced_first": "是"`, `"firstG": "是"`,
		`"expanded": "是"`, `"card_stuck": "是"`,
		`"current_season": "S38"`,
	} {
		assert.Contains(t, s, want)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := EncodeDocument(doc)
	require.NoError(t, err)
	got, err := DecodeDocument(data)
	require.NoError(t, err)

	assert.Equal(t, doc, got)
}

func TestDecodeDocument_Defaults(t *testing.T) {
	data := []byte(`{
		"my_decks": [],
		"opp_decks": ["X"],
		"records": [
			{"id": 2, "my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"}
		],
		"current_season": "S36"
	}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)

	rec := doc.Records[0]
	assert.Equal(t, 2, rec.ID)
	assert.Equal(t, models.CoinHeads, rec.Coin)
	assert.Equal(t, models.DefaultRank, rec.Rank)
	assert.Equal(t, "S36", rec.Season, "missing season falls back to the current season")
	assert.Equal(t, "", rec.Note)
	assert.False(t, rec.FirstMulliganHit)
	assert.False(t, rec.ExpandedHandTrapHit)
	assert.False(t, rec.CardStuck)
	assert.False(t, rec.ForcedFirst)
	assert.Empty(t, doc.MyDecks, "catalog defaults are applied by the gateway")
}

func TestDecodeDocument_RecomputesForcedFirst(t *testing.T) {
	data := []byte(`{"records": [
		{"id": 0, "my_deck": "A", "opp_deck": "X", "result": "敗", "turn": "先手", "coin": "反面", "forced_first": "否"},
		{"id": 1, "my_deck": "A", "opp_deck": "X", "result": "敗", "turn": "後手", "coin": "反面", "forced_first": "是"}
	]}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.True(t, doc.Records[0].ForcedFirst)
	assert.False(t, doc.Records[1].ForcedFirst)
}

func TestDecodeDocument_BadIDs(t *testing.T) {
	data := []byte(`{"records": [
		{"my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"},
		{"id": "7", "my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"},
		{"id": null, "my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"},
		{"id": 1.5, "my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"},
		{"id": 3, "my_deck": "A", "opp_deck": "X", "result": "勝", "turn": "先手"}
	]}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)

	var ids []int
	for _, r := range doc.Records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{-1, -1, -1, -1, 3}, ids)
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"records": [`))
	assert.Error(t, err)
}
