package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamStub() *pagedStub {
	stub := newPagedStub()
	stub.pages["/orgs/acme/teams"] = [][]Record{
		{{"name": "platform", "id": float64(1)}, {"name": "backend", "id": float64(2)}},
		{{"name": "frontend", "id": float64(3)}},
	}
	return stub
}

func TestResolverTeamLookupsMirror(t *testing.T) {
	r := NewResolver(teamStub(), "acme", nil)

	id, err := r.TeamID("backend")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	name, err := r.TeamName(2)
	require.NoError(t, err)
	assert.Equal(t, "backend", name)
}

func TestResolverFetchesOnce(t *testing.T) {
	stub := teamStub()
	r := NewResolver(stub, "acme", nil)

	_, err := r.TeamID("platform")
	require.NoError(t, err)
	_, err = r.TeamName(3)
	require.NoError(t, err)
	_, err = r.TeamNames()
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls["/orgs/acme/teams"], "two pages, fetched exactly once")
}

func TestResolverUnknownName(t *testing.T) {
	r := NewResolver(teamStub(), "acme", nil)

	_, err := r.TeamID("ghosts")
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "team", unresolved.Collection)
	assert.Equal(t, "ghosts", unresolved.Name)
}

func TestResolverUnknownID(t *testing.T) {
	r := NewResolver(teamStub(), "acme", nil)

	_, err := r.TeamName(404)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, int64(404), unresolved.ID)
}

func TestResolverTeamNamesAll(t *testing.T) {
	r := NewResolver(teamStub(), "acme", nil)

	names, err := r.TeamNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "frontend", "platform"}, names)
}

func TestResolverTeamNamesSubset(t *testing.T) {
	r := NewResolver(teamStub(), "acme", []string{"platform"})

	names, err := r.TeamNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"platform"}, names)

	// Lookups outside the subset still resolve.
	id, err := r.TeamID("frontend")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestResolverPropagatesFetchError(t *testing.T) {
	stub := newPagedStub()
	stub.err = assert.AnError
	r := NewResolver(stub, "acme", nil)

	_, err := r.TeamID("platform")
	assert.ErrorIs(t, err, assert.AnError)
}
