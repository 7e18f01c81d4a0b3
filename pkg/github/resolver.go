package github

import (
	"fmt"
	"net/url"
	"sort"
)

// nameIndex holds both directions of a collection's name/id mapping.
// The two views always mirror each other.
type nameIndex struct {
	byName map[string]int64
	byID   map[int64]string
}

func newNameIndex(byName map[string]int64) *nameIndex {
	idx := &nameIndex{
		byName: byName,
		byID:   make(map[int64]string, len(byName)),
	}
	for name, id := range byName {
		idx.byID[id] = name
	}
	return idx
}

// Resolver derives and caches name↔id mappings for the organization's
// named collections. Each collection is fetched once, on first need,
// and held for the remainder of the run.
type Resolver struct {
	client APIClient
	org    string

	// teams restricts the name-list accessor to a configured subset.
	// The id caches are always built from the full fetch regardless.
	teams []string

	teamIndex *nameIndex
}

// NewResolver creates a resolver for one organization. teams may be
// nil, in which case TeamNames returns every team.
func NewResolver(c APIClient, org string, teams []string) *Resolver {
	return &Resolver{client: c, org: org, teams: teams}
}

// TeamID resolves a team name to its server-assigned id. An unknown
// name is an error: writing would otherwise carry a bad id.
func (r *Resolver) TeamID(name string) (int64, error) {
	if err := r.loadTeams(); err != nil {
		return 0, err
	}
	id, ok := r.teamIndex.byName[name]
	if !ok {
		return 0, &UnresolvedError{Collection: "team", Name: name}
	}
	return id, nil
}

// TeamName resolves a team id back to its name.
func (r *Resolver) TeamName(id int64) (string, error) {
	if err := r.loadTeams(); err != nil {
		return "", err
	}
	name, ok := r.teamIndex.byID[id]
	if !ok {
		return "", &UnresolvedError{Collection: "team", ID: id}
	}
	return name, nil
}

// TeamNames returns the working set of team names: the configured
// subset when one is set, otherwise every team in the organization,
// sorted. The full mapping is fetched either way so that id lookups
// keep working outside the subset.
func (r *Resolver) TeamNames() ([]string, error) {
	if err := r.loadTeams(); err != nil {
		return nil, err
	}
	if len(r.teams) > 0 {
		out := make([]string, len(r.teams))
		copy(out, r.teams)
		return out, nil
	}
	names := make([]string, 0, len(r.teamIndex.byName))
	for name := range r.teamIndex.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Resolver) loadTeams() error {
	if r.teamIndex != nil {
		return nil
	}
	idx, err := r.loadIndex(fmt.Sprintf("/orgs/%s/teams", r.org))
	if err != nil {
		return fmt.Errorf("loading teams for %s: %w", r.org, err)
	}
	r.teamIndex = idx
	return nil
}

// loadIndex builds a bidirectional index for any named/identified
// collection in one fold pass.
func (r *Resolver) loadIndex(path string) (*nameIndex, error) {
	byName, err := FoldNameIDs(r.client, path, url.Values{"sort": {"full_name"}})
	if err != nil {
		return nil, err
	}
	return newNameIndex(byName), nil
}
