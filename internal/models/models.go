// Package models defines the domain types shared across the tracker.
package models

import "strings"

// AllFilter is the sentinel accepted by deck and rank filters meaning "no filter".
const AllFilter = "ALL"

// Result is the outcome of a match from the player's side.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// Turn is the player's turn order.
type Turn string

const (
	TurnFirst  Turn = "first"
	TurnSecond Turn = "second"
)

// Coin is the coin toss outcome.
type Coin string

const (
	CoinHeads Coin = "heads"
	CoinTails Coin = "tails"
)

// ParseResult parses a result name.
func ParseResult(s string) (Result, bool) {
	switch Result(strings.ToLower(strings.TrimSpace(s))) {
	case ResultWin:
		return ResultWin, true
	case ResultLoss:
		return ResultLoss, true
	}
	return "", false
}

// ParseTurn parses a turn order name.
func ParseTurn(s string) (Turn, bool) {
	switch Turn(strings.ToLower(strings.TrimSpace(s))) {
	case TurnFirst:
		return TurnFirst, true
	case TurnSecond:
		return TurnSecond, true
	}
	return "", false
}

// ParseCoin parses a coin toss name. An empty string yields the default, heads.
func ParseCoin(s string) (Coin, bool) {
	switch Coin(strings.ToLower(strings.TrimSpace(s))) {
	case CoinHeads, "":
		return CoinHeads, true
	case CoinTails:
		return CoinTails, true
	}
	return "", false
}

// MatchRecord is one played match.
type MatchRecord struct {
	ID      int    `json:"id"`
	MyDeck  string `json:"my_deck"`
	OppDeck string `json:"opp_deck"`
	Result  Result `json:"result"`
	Turn    Turn   `json:"turn"`
	Coin    Coin   `json:"coin"`
	Rank    string `json:"rank"`
	Note    string `json:"note"`
	Season  string `json:"season"`

	// ForcedFirst is derived from Coin and Turn; see RecomputeForcedFirst.
	ForcedFirst bool `json:"forced_first"`

	FirstMulliganHit    bool `json:"first_mulligan_hit"`     // opponent hit a hand trap on our first turn
	ExpandedHandTrapHit bool `json:"expanded_hand_trap_hit"` // a non-G hand trap hit while we were expanding
	CardStuck           bool `json:"card_stuck"`             // hand clogged
}

// IsWin reports whether the match was won.
func (r *MatchRecord) IsWin() bool {
	return r.Result == ResultWin
}

// RecomputeForcedFirst sets ForcedFirst: the player lost the toss and was sent first.
func (r *MatchRecord) RecomputeForcedFirst() {
	r.ForcedFirst = r.Coin == CoinTails && r.Turn == TurnFirst
}

// RecordFields carries the user-supplied values of a new record.
type RecordFields struct {
	MyDeck              string `json:"my_deck"`
	OppDeck             string `json:"opp_deck"`
	Result              Result `json:"result"`
	Turn                Turn   `json:"turn"`
	Coin                Coin   `json:"coin"`
	Rank                string `json:"rank"`
	FirstMulliganHit    bool   `json:"first_mulligan_hit"`
	ExpandedHandTrapHit bool   `json:"expanded_hand_trap_hit"`
	CardStuck           bool   `json:"card_stuck"`
	Note                string `json:"note"`
}

// RecordUpdate carries the fields of an edit. Nil fields are left unchanged.
type RecordUpdate struct {
	MyDeck              *string `json:"my_deck,omitempty"`
	OppDeck             *string `json:"opp_deck,omitempty"`
	Result              *Result `json:"result,omitempty"`
	Turn                *Turn   `json:"turn,omitempty"`
	Coin                *Coin   `json:"coin,omitempty"`
	Rank                *string `json:"rank,omitempty"`
	FirstMulliganHit    *bool   `json:"first_mulligan_hit,omitempty"`
	ExpandedHandTrapHit *bool   `json:"expanded_hand_trap_hit,omitempty"`
	CardStuck           *bool   `json:"card_stuck,omitempty"`
	Note                *string `json:"note,omitempty"`
}

// Apply copies every non-nil field onto rec and recomputes ForcedFirst.
// ID and Season are never touched.
func (u RecordUpdate) Apply(rec *MatchRecord) {
	if u.MyDeck != nil {
		rec.MyDeck = *u.MyDeck
	}
	if u.OppDeck != nil {
		rec.OppDeck = *u.OppDeck
	}
	if u.Result != nil {
		rec.Result = *u.Result
	}
	if u.Turn != nil {
		rec.Turn = *u.Turn
	}
	if u.Coin != nil {
		rec.Coin = *u.Coin
	}
	if u.Rank != nil {
		rec.Rank = *u.Rank
	}
	if u.FirstMulliganHit != nil {
		rec.FirstMulliganHit = *u.FirstMulliganHit
	}
	if u.ExpandedHandTrapHit != nil {
		rec.ExpandedHandTrapHit = *u.ExpandedHandTrapHit
	}
	if u.CardStuck != nil {
		rec.CardStuck = *u.CardStuck
	}
	if u.Note != nil {
		rec.Note = *u.Note
	}
	rec.RecomputeForcedFirst()
}

// SortOrder is the id ordering of the record list.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// ParseSortOrder parses "asc" or "desc". Anything else is ascending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return SortDescending
	}
	return SortAscending
}
