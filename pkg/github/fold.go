package github

import (
	"fmt"
	"net/url"
	"strconv"
)

// Fold reduces a paginated collection to a single value. It drives the
// client from the initial query's page (default 1) until no next
// cursor is advertised, applying combine once per record in server
// order: page order first, in-page order within. The accumulator may
// be mutated or replaced; the final value is whatever the last
// invocation produced.
func Fold[T any](c APIClient, path string, query url.Values, acc T, combine func(T, Record) T) (T, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}

	page := 1
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return acc, fmt.Errorf("invalid starting page %q: %w", p, err)
		}
		page = n
	}

	for {
		q.Set("page", strconv.Itoa(page))
		pg, err := c.GetPage(path, q)
		if err != nil {
			return acc, err
		}
		for _, rec := range pg.Records {
			acc = combine(acc, rec)
		}
		if pg.Next == 0 {
			return acc, nil
		}
		page = pg.Next
	}
}

// FoldNames folds a collection into the ordered sequence of each
// record's name.
func FoldNames(c APIClient, path string, query url.Values) ([]string, error) {
	return Fold(c, path, query, []string(nil), func(names []string, rec Record) []string {
		return append(names, rec.Name())
	})
}

// FoldNameIDs folds a collection into a name→id mapping. Insertion
// order is irrelevant and the last write wins for a duplicate name,
// though the source API is not expected to produce duplicates.
func FoldNameIDs(c APIClient, path string, query url.Values) (map[string]int64, error) {
	return Fold(c, path, query, map[string]int64{}, func(ids map[string]int64, rec Record) map[string]int64 {
		if id, ok := rec.ID(); ok {
			ids[rec.Name()] = id
		}
		return ids
	})
}
