package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// Labels used by the persisted document.
const (
	labelWin    = "勝"
	labelLoss   = "敗"
	labelFirst  = "先手"
	labelSecond = "後手"
	labelHeads  = "正面"
	labelTails  = "反面"
	labelYes    = "是"
	labelNo     = "否"
)

type wireDocument struct {
	MyDecks       []string     `json:"my_decks"`
	OppDecks      []string     `json:"opp_decks"`
	Records       []wireRecord `json:"records"`
	CurrentSeason *string      `json:"current_season,omitempty"`
}

type wireRecord struct {
	ID          json.RawMessage `json:"id"`
	MyDeck      string          `json:"my_deck"`
	OppDeck     string          `json:"opp_deck"`
	Result      string          `json:"result"`
	Turn        string          `json:"turn"`
	Rank        *string         `json:"rank,omitempty"`
	Coin        *string         `json:"coin,omitempty"`
	ForcedFirst string          `json:"forced_first"`
	FirstG      *string         `json:"firstG,omitempty"`
	Expanded    *string         `json:"expanded,omitempty"`
	CardStuck   *string         `json:"card_stuck,omitempty"`
	Note        *string         `json:"note,omitempty"`
	Season      *string         `json:"season,omitempty"`
}

func yesNo(b bool) *string {
	s := labelNo
	if b {
		s = labelYes
	}
	return &s
}

func strPtr(s string) *string { return &s }

// EncodeDocument renders doc as UTF-8 JSON indented with four spaces.
func EncodeDocument(doc *Document) ([]byte, error) {
	w := wireDocument{
		MyDecks:       doc.MyDecks,
		OppDecks:      doc.OppDecks,
		Records:       make([]wireRecord, 0, len(doc.Records)),
		CurrentSeason: strPtr(doc.CurrentSeason),
	}
	for _, rec := range doc.Records {
		w.Records = append(w.Records, encodeRecord(rec))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(w); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeRecord(rec models.MatchRecord) wireRecord {
	result := labelLoss
	if rec.Result == models.ResultWin {
		result = labelWin
	}
	turn := labelSecond
	if rec.Turn == models.TurnFirst {
		turn = labelFirst
	}
	coin := labelHeads
	if rec.Coin == models.CoinTails {
		coin = labelTails
	}
	rec.RecomputeForcedFirst()

	return wireRecord{
		ID:          json.RawMessage(fmt.Sprintf("%d", rec.ID)),
		MyDeck:      rec.MyDeck,
		OppDeck:     rec.OppDeck,
		Result:      result,
		Turn:        turn,
		Rank:        strPtr(rec.Rank),
		Coin:        &coin,
		ForcedFirst: *yesNo(rec.ForcedFirst),
		FirstG:      yesNo(rec.FirstMulliganHit),
		Expanded:    yesNo(rec.ExpandedHandTrapHit),
		CardStuck:   yesNo(rec.CardStuck),
		Note:        strPtr(rec.Note),
		Season:      strPtr(rec.Season),
	}
}

// DecodeDocument parses a persisted document and fills the documented
// defaults. Records whose id is missing or not an integer get id -1 so the
// record store can repair them. Catalogs are returned as stored; empty ones
// are replaced by the gateway.
func DecodeDocument(data []byte) (*Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := &Document{
		MyDecks:  w.MyDecks,
		OppDecks: w.OppDecks,
		Records:  make([]models.MatchRecord, 0, len(w.Records)),
	}
	if w.CurrentSeason != nil {
		doc.CurrentSeason = *w.CurrentSeason
	}
	for _, wr := range w.Records {
		doc.Records = append(doc.Records, decodeRecord(wr, doc.CurrentSeason))
	}
	return doc, nil
}

func decodeRecord(wr wireRecord, season string) models.MatchRecord {
	rec := models.MatchRecord{
		ID:      decodeID(wr.ID),
		MyDeck:  wr.MyDeck,
		OppDeck: wr.OppDeck,
		Result:  models.ResultLoss,
		Turn:    models.TurnSecond,
		Coin:    models.CoinHeads,
		Rank:    models.DefaultRank,
		Season:  season,
	}
	if wr.Result == labelWin {
		rec.Result = models.ResultWin
	}
	if wr.Turn == labelFirst {
		rec.Turn = models.TurnFirst
	}
	if wr.Coin != nil && *wr.Coin == labelTails {
		rec.Coin = models.CoinTails
	}
	if wr.Rank != nil {
		rec.Rank = *wr.Rank
	}
	if wr.Note != nil {
		rec.Note = *wr.Note
	}
	if wr.Season != nil {
		rec.Season = *wr.Season
	}
	rec.FirstMulliganHit = isYes(wr.FirstG)
	rec.ExpandedHandTrapHit = isYes(wr.Expanded)
	rec.CardStuck = isYes(wr.CardStuck)
	rec.RecomputeForcedFirst()
	return rec
}

func isYes(s *string) bool {
	return s != nil && *s == labelYes
}

func decodeID(raw json.RawMessage) int {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return -1
	}
	var id int
	if err := json.Unmarshal(raw, &id); err != nil || id < 0 {
		return -1
	}
	return id
}
