package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func recordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records", "r"},
		Short:   "Add, edit, delete and list match records",
	}
	cmd.AddCommand(recordAddCmd(a))
	cmd.AddCommand(recordEditCmd(a))
	cmd.AddCommand(recordDeleteCmd(a))
	cmd.AddCommand(recordListCmd(a))
	cmd.AddCommand(recordShowCmd(a))
	return cmd
}

// recordFlags holds the field flags shared by add and edit.
type recordFlags struct {
	myDeck, oppDeck         string
	result, turn, coin      string
	rank, note              string
	firstG, expanded, stuck bool
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.myDeck, "my", "", "Own deck")
	fs.StringVar(&f.oppDeck, "opp", "", "Opponent deck")
	fs.StringVar(&f.result, "result", "", "win or loss")
	fs.StringVar(&f.turn, "turn", "", "first or second")
	fs.StringVar(&f.coin, "coin", "heads", "heads or tails")
	fs.StringVar(&f.rank, "rank", models.DefaultRank, "Rank tier")
	fs.StringVar(&f.note, "note", "", "Free text note")
	fs.BoolVar(&f.firstG, "first-g", false, "Opponent hit a hand trap on our first turn")
	fs.BoolVar(&f.expanded, "expanded", false, "A hand trap hit while expanding")
	fs.BoolVar(&f.stuck, "stuck", false, "Hand was clogged")
}

func (f *recordFlags) fields() (models.RecordFields, error) {
	result, ok := models.ParseResult(f.result)
	if !ok {
		return models.RecordFields{}, fmt.Errorf("invalid --result %q, want win or loss", f.result)
	}
	turn, ok := models.ParseTurn(f.turn)
	if !ok {
		return models.RecordFields{}, fmt.Errorf("invalid --turn %q, want first or second", f.turn)
	}
	coin, ok := models.ParseCoin(f.coin)
	if !ok {
		return models.RecordFields{}, fmt.Errorf("invalid --coin %q, want heads or tails", f.coin)
	}
	return models.RecordFields{
		MyDeck:              f.myDeck,
		OppDeck:             f.oppDeck,
		Result:              result,
		Turn:                turn,
		Coin:                coin,
		Rank:                f.rank,
		FirstMulliganHit:    f.firstG,
		ExpandedHandTrapHit: f.expanded,
		CardStuck:           f.stuck,
		Note:                f.note,
	}, nil
}

// update builds an edit from the flags the user actually set.
func (f *recordFlags) update(fs *pflag.FlagSet) (models.RecordUpdate, error) {
	var upd models.RecordUpdate
	if fs.Changed("my") {
		upd.MyDeck = &f.myDeck
	}
	if fs.Changed("opp") {
		upd.OppDeck = &f.oppDeck
	}
	if fs.Changed("result") {
		result, ok := models.ParseResult(f.result)
		if !ok {
			return upd, fmt.Errorf("invalid --result %q, want win or loss", f.result)
		}
		upd.Result = &result
	}
	if fs.Changed("turn") {
		turn, ok := models.ParseTurn(f.turn)
		if !ok {
			return upd, fmt.Errorf("invalid --turn %q, want first or second", f.turn)
		}
		upd.Turn = &turn
	}
	if fs.Changed("coin") {
		coin, ok := models.ParseCoin(f.coin)
		if !ok {
			return upd, fmt.Errorf("invalid --coin %q, want heads or tails", f.coin)
		}
		upd.Coin = &coin
	}
	if fs.Changed("rank") {
		upd.Rank = &f.rank
	}
	if fs.Changed("note") {
		upd.Note = &f.note
	}
	if fs.Changed("first-g") {
		upd.FirstMulliganHit = &f.firstG
	}
	if fs.Changed("expanded") {
		upd.ExpandedHandTrapHit = &f.expanded
	}
	if fs.Changed("stuck") {
		upd.CardStuck = &f.stuck
	}
	return upd, nil
}

func recordAddCmd(a *app) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a match in the active season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := f.fields()
			if err != nil {
				return err
			}
			rec, err := a.controller.Records.Add(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added record %d to %s\n", rec.ID, rec.Season)
			return nil
		},
	}
	f.register(cmd.Flags())
	_ = cmd.RegisterFlagCompletionFunc("rank", completeFrom(models.RankTiers))
	_ = cmd.MarkFlagRequired("my")
	_ = cmd.MarkFlagRequired("opp")
	_ = cmd.MarkFlagRequired("result")
	_ = cmd.MarkFlagRequired("turn")
	return cmd
}

func recordEditCmd(a *app) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a record; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			upd, err := f.update(cmd.Flags())
			if err != nil {
				return err
			}
			rec, err := a.controller.Records.Update(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	f.register(cmd.Flags())
	_ = cmd.RegisterFlagCompletionFunc("rank", completeFrom(models.RankTiers))
	return cmd
}

func recordDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.controller.Records.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d\n", id)
			return nil
		},
	}
}

func recordListCmd(a *app) *cobra.Command {
	var deck, order string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the active season's records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := a.controller.Records.List(deck, models.ParseSortOrder(order))
			printRecords(cmd.OutOrStdout(), a.controller.Seasons.Active(), rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&deck, "deck", models.AllFilter, "Only records of this own deck")
	cmd.Flags().StringVar(&order, "order", "asc", "Sort by id: asc or desc")
	return cmd
}

func recordShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := a.controller.Records.Get(id)
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}
