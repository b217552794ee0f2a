package registry

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"archive-keeper/models"
)

type record[K any] interface {
	SearchText() string
	SortValue(K) string
}

// filterAndSort keeps the items whose search text contains query, ignoring
// case, and orders them by the key's value descending. Equal values fall
// back to ascending identifier so the order never depends on map iteration.
func filterAndSort[K any, T record[K]](items map[string]T, query string, key K) []T {
	fold := cases.Fold()
	needle := fold.String(query)

	ids := make([]string, 0, len(items))
	for id, item := range items {
		if needle == "" || strings.Contains(fold.String(item.SearchText()), needle) {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(items[b].SortValue(key), items[a].SortValue(key)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = items[id]
	}
	return out
}

// ListRules returns the rules matching query ordered by sortBy.
func (r *Registry) ListRules(query string, sortBy models.RuleSortKey) []models.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterAndSort(r.rules.Rules, query, sortBy)
}

// ListPages returns the pages matching query ordered by sortBy.
func (r *Registry) ListPages(query string, sortBy models.PageSortKey) []models.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pages := filterAndSort(r.pages.Pages, query, sortBy)
	for i := range pages {
		pages[i] = pages[i].Clone()
	}
	return pages
}
