// Command md-companion records Master Duel matches and reports per-season
// statistics.
//
// Usage:
//
//	md-companion record add --my 刻魔蛇眼 --opp 天盃龍 --result win --turn first --coin tails --rank "Gold 1"
//	md-companion record list --deck ALL --order desc
//	md-companion stats --deck 刻魔蛇眼
//	md-companion season create S39
//	md-companion chart opponents --rank Gold --open
//	md-companion serve
//	md-companion config init --backend sqlite --data ~/md/records.db
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/MD-Companion/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts appOptions
	a := &app{}

	root := &cobra.Command{
		Use:           "md-companion",
		Short:         "Master Duel match record tracker",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.md-companion/config.toml)")
	flags.StringVar(&opts.dataPath, "data", "", "Data file, overrides the config")
	flags.StringVar(&opts.backend, "backend", "", "Storage backend: json or sqlite")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(recordCmd(a))
	root.AddCommand(deckCmd(a))
	root.AddCommand(seasonCmd(a))
	root.AddCommand(statsCmd(a))
	root.AddCommand(distCmd(a))
	root.AddCommand(chartCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(backupCmd(a))
	root.AddCommand(serveCmd(a))
	root.AddCommand(statusCmd(a))
	root.AddCommand(configCmd(&opts))
	root.AddCommand(versionCmd())

	return root
}

// completeFrom offers a fixed list of values for a flag.
func completeFrom(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// No data file is needed.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "md-companion %s (%s, %s)\n", info.Version, info.Commit, info.GoVersion)
		},
	}
}
