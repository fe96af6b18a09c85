package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/MD-Companion/internal/decks"
)

func deckCmd(a *app) *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage the own and opponent deck catalogs",
	}
	cmd.PersistentFlags().StringVar(&kindName, "kind", "mine", "Catalog: mine or opponent")

	kind := func() (decks.Kind, error) { return decks.ParseKind(kindName) }

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the catalog in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kind()
			if err != nil {
				return err
			}
			for i, name := range a.controller.Decks.List(k) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Append a deck name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kind()
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if err := a.controller.Decks.Add(cmd.Context(), k, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to the %s catalog\n", strings.TrimSpace(name), k)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a deck in place; existing records keep the old name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kind()
			if err != nil {
				return err
			}
			if err := a.controller.Decks.Rename(cmd.Context(), k, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", args[0], strings.TrimSpace(args[1]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a deck name; existing records are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kind()
			if err != nil {
				return err
			}
			if err := a.controller.Decks.Delete(cmd.Context(), k, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	})

	return cmd
}

func seasonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "List, create, load and delete seasons",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List seasons; the active one is marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := a.controller.Seasons.Active()
			for _, s := range a.controller.Seasons.List() {
				marker := " "
				if s == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, s)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create SEASON",
		Short: "Create a new season and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.controller.Seasons.Create(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active season: %s\n", a.controller.Seasons.Active())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load SEASON",
		Short: "Make a season active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season := strings.TrimSpace(args[0])
			if season == "" {
				return fmt.Errorf("season is required")
			}
			a.controller.Seasons.Activate(cmd.Context(), season)
			fmt.Fprintf(cmd.OutOrStdout(), "Active season: %s\n", season)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete SEASON",
		Short: "Delete every record of a season other than the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.controller.Seasons.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records of %s\n", n, args[0])
			return nil
		},
	})

	return cmd
}
