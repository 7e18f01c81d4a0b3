package github

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedStub serves pre-split pages per path and counts fetches, so
// tests can assert both traversal order and fetch laziness.
type pagedStub struct {
	pages map[string][][]Record
	calls map[string]int
	err   error
}

func newPagedStub() *pagedStub {
	return &pagedStub{
		pages: make(map[string][][]Record),
		calls: make(map[string]int),
	}
}

func (s *pagedStub) GetPage(path string, query url.Values) (*Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls[path]++

	pages := s.pages[path]
	page := 1
	if p := query.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		page = n
	}
	if page > len(pages) {
		return &Page{}, nil
	}

	next := 0
	if page < len(pages) {
		next = page + 1
	}
	return &Page{Records: pages[page-1], Next: next}, nil
}

func (s *pagedStub) GetRuleset(owner, repo string, id int64) (Record, error) {
	return nil, fmt.Errorf("unexpected GetRuleset(%s, %s, %d)", owner, repo, id)
}

func (s *pagedStub) CreateRuleset(owner, repo string, _ Record) (Record, error) {
	return nil, fmt.Errorf("unexpected CreateRuleset(%s, %s)", owner, repo)
}

func (s *pagedStub) UpdateRuleset(owner, repo string, id int64, _ Record) (Record, error) {
	return nil, fmt.Errorf("unexpected UpdateRuleset(%s, %s, %d)", owner, repo, id)
}

func TestFoldTraversesAllPages(t *testing.T) {
	stub := newPagedStub()
	stub.pages["/orgs/acme/repos"] = [][]Record{
		{{"name": "alpha"}, {"name": "beta"}},
		{{"name": "gamma"}},
		{{"name": "delta"}, {"name": "epsilon"}},
	}

	names, err := Fold(stub, "/orgs/acme/repos", nil, []string(nil), func(acc []string, rec Record) []string {
		return append(acc, rec.Name())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta", "epsilon"}, names)
	assert.Equal(t, 3, stub.calls["/orgs/acme/repos"])
}

func TestFoldStartsFromQueryPage(t *testing.T) {
	stub := newPagedStub()
	stub.pages["/orgs/acme/repos"] = [][]Record{
		{{"name": "alpha"}},
		{{"name": "beta"}},
	}

	names, err := FoldNames(stub, "/orgs/acme/repos", url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)
}

func TestFoldInvalidStartingPage(t *testing.T) {
	stub := newPagedStub()
	_, err := FoldNames(stub, "/orgs/acme/repos", url.Values{"page": {"two"}})
	assert.Error(t, err)
}

func TestFoldPropagatesClientError(t *testing.T) {
	stub := newPagedStub()
	stub.err = errors.New("boom")

	_, err := FoldNames(stub, "/orgs/acme/repos", nil)
	assert.ErrorIs(t, err, stub.err)
}

func TestFoldEmptyCollection(t *testing.T) {
	stub := newPagedStub()
	stub.pages["/orgs/acme/repos"] = nil

	names, err := FoldNames(stub, "/orgs/acme/repos", nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFoldNameIDs(t *testing.T) {
	stub := newPagedStub()
	stub.pages["/orgs/acme/teams"] = [][]Record{
		{{"name": "platform", "id": float64(1)}, {"name": "backend", "id": float64(2)}},
		{{"name": "nameless"}, {"name": "frontend", "id": float64(3)}},
	}

	ids, err := FoldNameIDs(stub, "/orgs/acme/teams", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"platform": 1,
		"backend":  2,
		"frontend": 3,
	}, ids)
}
