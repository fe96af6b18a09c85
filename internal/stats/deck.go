package stats

import "github.com/ramonehamilton/MD-Companion/internal/models"

// Ratio is a count over a denominator with its rounded percentage.
type Ratio struct {
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func newRatio(count, total int) Ratio {
	return Ratio{Count: count, Total: total, Percent: Percent(count, total)}
}

// DeckStatistics holds the aggregate numbers for one own-deck in one season.
type DeckStatistics struct {
	Season string `json:"season"`
	Deck   string `json:"deck"`

	Total   int     `json:"total"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`

	FirstTurnWinRate  Ratio `json:"first_turn_win_rate"`
	SecondTurnWinRate Ratio `json:"second_turn_win_rate"`
	HeadsRate         Ratio `json:"heads_rate"`
	TailsRate         Ratio `json:"tails_rate"`
	ForcedFirstRate   Ratio `json:"forced_first_rate"`

	// Win rates restricted to games where the first mulligan drew a hand
	// trap, or where an expanded hand trap was drawn.
	FirstMulliganWinRate Ratio `json:"first_mulligan_win_rate"`
	ExpandedWinRate      Ratio `json:"expanded_win_rate"`

	CardStuckRate Ratio `json:"card_stuck_rate"`
}

// ComputeDeckStatistics aggregates the records of season played with deck.
// An empty deck means nothing is selected and every figure is zero.
func ComputeDeckStatistics(recs []models.MatchRecord, season, deck string) DeckStatistics {
	out := DeckStatistics{Season: season, Deck: deck}
	if deck == "" {
		return out
	}

	var (
		firstGames, firstWins   int
		secondGames, secondWins int
		heads, tails, forced    int
		mullGames, mullWins     int
		expGames, expWins       int
		stuck                   int
	)

	for _, rec := range recs {
		if rec.Season != season || rec.MyDeck != deck {
			continue
		}
		out.Total++
		win := rec.IsWin()
		if win {
			out.Wins++
		}

		switch rec.Turn {
		case models.TurnFirst:
			firstGames++
			if win {
				firstWins++
			}
		case models.TurnSecond:
			secondGames++
			if win {
				secondWins++
			}
		}

		if rec.Coin == models.CoinTails {
			tails++
		} else {
			heads++
		}
		if rec.ForcedFirst {
			forced++
		}

		if rec.FirstMulliganHit {
			mullGames++
			if win {
				mullWins++
			}
		}
		if rec.ExpandedHandTrapHit {
			expGames++
			if win {
				expWins++
			}
		}
		if rec.CardStuck {
			stuck++
		}
	}

	out.WinRate = Percent(out.Wins, out.Total)
	out.FirstTurnWinRate = newRatio(firstWins, firstGames)
	out.SecondTurnWinRate = newRatio(secondWins, secondGames)
	out.HeadsRate = newRatio(heads, out.Total)
	out.TailsRate = newRatio(tails, out.Total)
	out.ForcedFirstRate = newRatio(forced, out.Total)
	out.FirstMulliganWinRate = newRatio(mullWins, mullGames)
	out.ExpandedWinRate = newRatio(expWins, expGames)
	out.CardStuckRate = newRatio(stuck, out.Total)

	return out
}
