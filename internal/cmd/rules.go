package cmd

import (
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Fetch, push, and seed repository rulesets",
	Long: `Commands for repository rulesets.

  get      - fetch a repository's rulesets and print them as a report
  set      - reconcile a rule document against the server
  default  - seed the built-in default rule templates into repositories`,
}

func init() {
	rulesCmd.AddCommand(rulesGetCmd)
	rulesCmd.AddCommand(rulesSetCmd)
	rulesCmd.AddCommand(rulesDefaultCmd)
}
