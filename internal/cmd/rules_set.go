package cmd

import (
	"github.com/spf13/cobra"

	"reporules/pkg/github"
)

var rulesSetCmd = &cobra.Command{
	Use:     "set <rules-file>",
	Aliases: []string{"set-repo-rules"},
	Short:   "Reconcile a rule document against the server",
	Long: `Read a rule document (a report produced by 'rules get', or hand-written
YAML) and converge the server: report-only additions are stripped, team
names are resolved to ids, and each rule is created or updated by name.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesSet,
}

func runRulesSet(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	rules, err := github.LoadRulesFile(args[0])
	if err != nil {
		return err
	}

	return a.reconciler().Apply(rules)
}
