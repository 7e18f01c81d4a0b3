package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"reporules/pkg/github"
)

var branchTeams []string

var branchesCmd = &cobra.Command{
	Use:     "branches <repo>",
	Aliases: []string{"list-branches"},
	Short:   "List a repository's branches filtered by team prefix",
	Long: `List branch names whose name starts with "<team>-" for any team in the
working set. Pass --team ` + github.TeamAll + ` to disable filtering. The
default filter is the configured team subset, or no filter when none is
configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runBranches,
}

func init() {
	branchesCmd.Flags().StringArrayVar(&branchTeams, "team", nil, "team name to filter by (repeatable)")
}

func runBranches(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	teams := branchTeams
	if len(teams) == 0 {
		if len(a.cfg.GitHub.Teams) > 0 {
			teams = a.cfg.GitHub.Teams
		} else {
			teams = []string{github.TeamAll}
		}
	}

	branches, err := github.FoldNames(a.client,
		fmt.Sprintf("/repos/%s/%s/branches", a.cfg.GitHub.Organization, args[0]),
		url.Values{})
	if err != nil {
		return err
	}

	for _, name := range github.FilterBranchesByTeam(branches, teams) {
		fmt.Println(name)
	}
	return nil
}
