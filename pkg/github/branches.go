package github

import (
	"sort"
	"strings"
)

// TeamAll is the sentinel team name that disables branch filtering.
const TeamAll = "all"

// FilterBranchesByTeam returns the branch names whose name starts with
// "<team>-" for any of the given teams, sorted lexicographically. If
// teams contains TeamAll, every branch is returned (still sorted).
func FilterBranchesByTeam(branches, teams []string) []string {
	all := false
	for _, team := range teams {
		if team == TeamAll {
			all = true
			break
		}
	}

	var out []string
	for _, branch := range branches {
		if all || matchesTeam(branch, teams) {
			out = append(out, branch)
		}
	}
	sort.Strings(out)
	return out
}

func matchesTeam(branch string, teams []string) bool {
	for _, team := range teams {
		if strings.HasPrefix(branch, team+"-") {
			return true
		}
	}
	return false
}
