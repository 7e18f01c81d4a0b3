package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"reporules/pkg/github"
)

var reposCmd = &cobra.Command{
	Use:     "repos",
	Aliases: []string{"list-repos", "repositories"},
	Short:   "List the organization's repositories",
	Args:    cobra.NoArgs,
	RunE:    runRepos,
}

func runRepos(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	names, err := github.FoldNames(a.client,
		fmt.Sprintf("/orgs/%s/repos", a.cfg.GitHub.Organization),
		url.Values{"sort": {"full_name"}})
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
