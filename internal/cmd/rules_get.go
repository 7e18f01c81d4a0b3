package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"reporules/pkg/github"
)

var (
	rulesMapActors bool
	rulesVerbose   bool
	rulesOutFile   string
)

var rulesGetCmd = &cobra.Command{
	Use:     "get <repo>",
	Aliases: []string{"get-repo-rules"},
	Short:   "Fetch and print a repository's rulesets",
	Long: `Fetch every ruleset of a repository and print them as an indented report.

With --map-actors, Team bypass actors carry their resolved team name; with
--verbose, server provenance fields (timestamps, link) are appended. Output
with either flag active is a report, not direct write input; pushing it
back through 'rules set' strips the additions first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesGet,
}

func init() {
	rulesGetCmd.Flags().BoolVar(&rulesMapActors, "map-actors", false, "resolve bypass actor ids to team names")
	rulesGetCmd.Flags().BoolVarP(&rulesVerbose, "verbose", "v", false, "include server provenance fields")
	rulesGetCmd.Flags().StringVarP(&rulesOutFile, "output", "o", "", "write the report to a file instead of stdout")
}

func runRulesGet(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	rules, err := a.reconciler().ExistingRules(args[0])
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if rulesOutFile != "" {
		f, err := os.Create(rulesOutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	emitter := &github.Emitter{
		Indent:    a.cfg.Indent(),
		MapActors: rulesMapActors,
		Verbose:   rulesVerbose,
		Resolver:  a.resolver,
	}
	return emitter.Emit(out, rules)
}
