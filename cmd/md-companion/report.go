package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/MD-Companion/internal/charts"
	"github.com/ramonehamilton/MD-Companion/internal/export"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

func statsCmd(a *app) *cobra.Command {
	var deck string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the statistics of an own deck in the active season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.controller.Stats.Deck(deck)
			printDeckStatistics(cmd.OutOrStdout(), s, a.controller.Stats.Streaks(deck))
			return nil
		},
	}
	cmd.Flags().StringVar(&deck, "deck", "", "Own deck")
	return cmd
}

func distCmd(a *app) *cobra.Command {
	var rank string
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Show deck distributions of the active season",
	}

	opponents := &cobra.Command{
		Use:   "opponents",
		Short: "Opponent decks, optionally filtered by rank prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := fmt.Sprintf("Opponent decks (%s, rank %s)", a.controller.Seasons.Active(), rank)
			printDistribution(cmd.OutOrStdout(), title, a.controller.Stats.Opponents(rank))
			return nil
		},
	}
	opponents.Flags().StringVar(&rank, "rank", models.AllFilter, "Rank prefix, e.g. Diamond or Master")
	_ = opponents.RegisterFlagCompletionFunc("rank", completeFrom(models.RankFilters))
	cmd.AddCommand(opponents)

	cmd.AddCommand(&cobra.Command{
		Use:   "own",
		Short: "Own decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := fmt.Sprintf("Own decks (%s)", a.controller.Seasons.Active())
			printDistribution(cmd.OutOrStdout(), title, a.controller.Stats.Own())
			return nil
		},
	})

	return cmd
}

func chartCmd(a *app) *cobra.Command {
	var rank, out string
	var open bool
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render distribution pie charts as HTML",
	}
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "Output file (default <data dir>/charts/<chart>_<season>.html)")
	cmd.PersistentFlags().BoolVar(&open, "open", false, "Open the chart in the browser")

	write := func(cmd *cobra.Command, name string, render func(path string) error) error {
		path := out
		if path == "" {
			path = filepath.Join(filepath.Dir(a.cfg.Storage.Path), "charts",
				fmt.Sprintf("%s_%s.html", name, a.controller.Seasons.Active()))
		}
		if err := render(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
		if open {
			return charts.OpenInBrowser(path)
		}
		return nil
	}

	opponents := &cobra.Command{
		Use:   "opponents",
		Short: "Opponent deck pie, optionally filtered by rank prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd, "opponents", func(path string) error {
				pie := charts.OpponentPie(a.controller.Stats.Opponents(rank), a.controller.Seasons.Active(), rank, charts.DefaultChartConfig())
				return charts.RenderFile(pie, path)
			})
		},
	}
	opponents.Flags().StringVar(&rank, "rank", models.AllFilter, "Rank prefix")
	_ = opponents.RegisterFlagCompletionFunc("rank", completeFrom(models.RankFilters))
	cmd.AddCommand(opponents)

	cmd.AddCommand(&cobra.Command{
		Use:   "own",
		Short: "Own deck pie with win rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd, "own", func(path string) error {
				pie := charts.OwnPie(a.controller.Stats.Own(), a.controller.Seasons.Active(), charts.DefaultChartConfig())
				return charts.RenderFile(pie, path)
			})
		},
	})

	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var format, deck, order, out string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active season's records as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			rows := export.RecordRows(a.controller.Records.List(deck, models.ParseSortOrder(order)))

			if out == "-" {
				return export.Write(cmd.OutOrStdout(), f, rows, true)
			}
			if out == "" {
				name := export.GenerateFilename("records_"+a.controller.Seasons.Active(), f, time.Now())
				out = filepath.Join(filepath.Dir(a.cfg.Storage.Path), "exports", name)
			}

			exporter := export.NewExporter(export.Options{
				Format:     f,
				FilePath:   out,
				PrettyJSON: true,
				Overwrite:  overwrite,
			})
			if err := exporter.Export(rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(rows), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().StringVar(&deck, "deck", models.AllFilter, "Only records of this own deck")
	cmd.Flags().StringVar(&order, "order", "asc", "Sort by id: asc or desc")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func backupCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list and restore backups of the data file",
	}
	cmd.PersistentFlags().StringVar(&password, "password", "", "Encryption password (default $MDC_BACKUP_PASSWORD)")

	pw := func() string {
		if password != "" {
			return password
		}
		return a.cfg.Backup.Password
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Save and back up the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.controller.Backups.Create(cmd.Context(), name, pw())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes, encrypted: %t)\n", info.Path, info.Size, info.Encrypted)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Backup name (default backup_<timestamp>)")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := a.controller.Backups.List()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups")
				return nil
			}
			for _, b := range backups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d bytes  encrypted: %t\n",
					b.ModTime.Format("2006-01-02 15:04:05"), b.Name, b.Size, b.Encrypted)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore NAME",
		Short: "Replace the data file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.controller.Backups.Restore(cmd.Context(), args[0], pw()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s, %d records loaded\n", args[0], len(a.controller.Snapshot().Records))
			return nil
		},
	})

	return cmd
}
