package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "reporules",
	Short: "Administer GitHub repository rulesets declaratively",
	Long: `Reporules administers permission rulesets on one GitHub organization's
repositories: listing teams, repositories, and branches, fetching existing
rulesets as an editable report, and reconciling declarative rule documents
against server state by rule name (create when missing, update when found).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the command tree. Every error surfaces here: print a
// diagnostic and terminate with a non-zero exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "error: %#v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.reporules/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose diagnostics and request bodies")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(rulesCmd)
}
