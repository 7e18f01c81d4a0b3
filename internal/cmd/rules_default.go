package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"reporules/pkg/fuzzy"
	"reporules/pkg/github"
)

var rulesDefaultCmd = &cobra.Command{
	Use:     "default [repo ...]",
	Aliases: []string{"set-default-rules"},
	Short:   "Seed the default rule templates into repositories",
	Long: `Push the built-in default rule templates to each target repository,
creating or updating by rule name. With no repositories given, pick them
interactively from the organization's repository list.`,
	RunE: runRulesDefault,
}

func runRulesDefault(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	repos := args
	if len(repos) == 0 {
		names, err := github.FoldNames(a.client,
			fmt.Sprintf("/orgs/%s/repos", a.cfg.GitHub.Organization),
			url.Values{"sort": {"full_name"}})
		if err != nil {
			return err
		}
		picker := fuzzy.New("Repositories to seed:")
		picker.SetItems(names)
		repos, err = picker.Pick()
		if err != nil {
			return err
		}
	}

	templates := github.DefaultRules(a.cfg.GitHub.Enforcement, a.cfg.GitHub.Teams)
	return a.reconciler().ApplyDefaults(repos, templates)
}
