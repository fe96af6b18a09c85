package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/stats"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

// printRecords renders rows as an aligned table.
func printRecords(w io.Writer, season string, rows []models.MatchRecord) {
	fmt.Fprintf(w, "Season %s: %d records\n", season, len(rows))
	if len(rows) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMY DECK\tOPP DECK\tRESULT\tTURN\tCOIN\tFORCED\tRANK\tFIRST G\tEXPANDED\tSTUCK\tNOTE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.MyDeck, r.OppDeck, r.Result, r.Turn, r.Coin, yesNo(r.ForcedFirst), r.Rank,
			yesNo(r.FirstMulliganHit), yesNo(r.ExpandedHandTrapHit), yesNo(r.CardStuck), r.Note)
	}
	_ = tw.Flush()
}

func printRecord(w io.Writer, r models.MatchRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", r.ID)
	fmt.Fprintf(tw, "Season\t%s\n", r.Season)
	fmt.Fprintf(tw, "My deck\t%s\n", r.MyDeck)
	fmt.Fprintf(tw, "Opponent deck\t%s\n", r.OppDeck)
	fmt.Fprintf(tw, "Result\t%s\n", r.Result)
	fmt.Fprintf(tw, "Turn\t%s\n", r.Turn)
	fmt.Fprintf(tw, "Coin\t%s\n", r.Coin)
	fmt.Fprintf(tw, "Forced first\t%s\n", yesNo(r.ForcedFirst))
	fmt.Fprintf(tw, "Rank\t%s\n", r.Rank)
	fmt.Fprintf(tw, "First-turn hand trap\t%s\n", yesNo(r.FirstMulliganHit))
	fmt.Fprintf(tw, "Hand trap while expanding\t%s\n", yesNo(r.ExpandedHandTrapHit))
	fmt.Fprintf(tw, "Card stuck\t%s\n", yesNo(r.CardStuck))
	fmt.Fprintf(tw, "Note\t%s\n", r.Note)
	_ = tw.Flush()
}

func ratio(r stats.Ratio) string {
	return fmt.Sprintf("%.1f%% (%d/%d)", r.Percent, r.Count, r.Total)
}

// printDeckStatistics renders the statistics panel of one deck.
func printDeckStatistics(w io.Writer, s stats.DeckStatistics, streaks stats.StreakStats) {
	if s.Deck == "" {
		fmt.Fprintln(w, "No deck selected")
		return
	}

	title := fmt.Sprintf("%s, season %s", s.Deck, s.Season)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(title))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Games\t%d\n", s.Total)
	fmt.Fprintf(tw, "Wins\t%d\n", s.Wins)
	fmt.Fprintf(tw, "Win rate\t%.1f%%\n", s.WinRate)
	fmt.Fprintf(tw, "Going first win rate\t%s\n", ratio(s.FirstTurnWinRate))
	fmt.Fprintf(tw, "Going second win rate\t%s\n", ratio(s.SecondTurnWinRate))
	fmt.Fprintf(tw, "Coin heads\t%s\n", ratio(s.HeadsRate))
	fmt.Fprintf(tw, "Coin tails\t%s\n", ratio(s.TailsRate))
	fmt.Fprintf(tw, "Forced first\t%s\n", ratio(s.ForcedFirstRate))
	fmt.Fprintf(tw, "Win rate after first-turn hand trap\t%s\n", ratio(s.FirstMulliganWinRate))
	fmt.Fprintf(tw, "Win rate after hand trap while expanding\t%s\n", ratio(s.ExpandedWinRate))
	fmt.Fprintf(tw, "Card stuck\t%s\n", ratio(s.CardStuckRate))
	fmt.Fprintf(tw, "Current streak\t%s\n", stats.FormatCurrentStreak(streaks.CurrentStreak))
	fmt.Fprintf(tw, "Longest win streak\t%d\n", streaks.LongestWinStreak)
	fmt.Fprintf(tw, "Longest loss streak\t%d\n", streaks.LongestLossStreak)
	_ = tw.Flush()
}

// printDistribution renders distribution slices, largest first.
func printDistribution(w io.Writer, title string, d stats.Distribution) {
	fmt.Fprintf(w, "%s: %d games, win rate %.1f%%\n", title, d.Total, d.WinRate)
	if d.Total == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DECK\tGAMES\tSHARE\tWINS\tWIN RATE")
	for i := len(d.Slices) - 1; i >= 0; i-- {
		s := d.Slices[i]
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%d\t%.1f%%\n", s.Deck, s.Count, s.Percent, s.Wins, s.WinRate)
	}
	_ = tw.Flush()
}
