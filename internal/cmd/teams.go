package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var teamsWithIDs bool

var teamsCmd = &cobra.Command{
	Use:     "teams",
	Aliases: []string{"list-teams"},
	Short:   "List the working set of teams",
	Long: `List the configured team subset, or every team in the organization when
no subset is configured. With --ids, print a table including each team's
server-assigned id.`,
	Args: cobra.NoArgs,
	RunE: runTeams,
}

func init() {
	teamsCmd.Flags().BoolVar(&teamsWithIDs, "ids", false, "include team ids")
}

func runTeams(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	names, err := a.resolver.TeamNames()
	if err != nil {
		return err
	}

	if !teamsWithIDs {
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Team", "ID"})
	for _, name := range names {
		id, err := a.resolver.TeamID(name)
		if err != nil {
			return err
		}
		tw.AppendRow(table.Row{name, id})
	}
	tw.Render()
	return nil
}
