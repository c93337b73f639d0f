package ingest

import (
	"sort"

	"github.com/milk9111/traceable/rationale"
)

// Library keeps asset ids newest first. Each batch is prepended in file
// order.
type Library struct {
	ids        []string
	categories map[string]rationale.Category
}

func NewLibrary() *Library {
	return &Library{categories: make(map[string]rationale.Category)}
}

func (l *Library) Prepend(assets []Asset) {
	if l == nil || len(assets) == 0 {
		return
	}
	ids := make([]string, 0, len(assets)+len(l.ids))
	for _, a := range assets {
		if _, dup := l.categories[a.ID]; dup {
			continue
		}
		ids = append(ids, a.ID)
		l.categories[a.ID] = a.Category
	}
	l.ids = append(ids, l.ids...)
}

func (l *Library) Remove(id string) bool {
	if l == nil {
		return false
	}
	if _, ok := l.categories[id]; !ok {
		return false
	}
	delete(l.categories, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns every asset id, newest first.
func (l *Library) IDs() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.ids...)
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ids)
}

// Group is one sidebar section.
type Group struct {
	Category rationale.Category
	IDs      []string
}

// Groups splits the library by category. Known categories come first in
// their canonical order, then any others alphabetically. Empty groups are
// left out.
func (l *Library) Groups() []Group {
	if l == nil {
		return nil
	}
	byCat := make(map[rationale.Category][]string)
	for _, id := range l.ids {
		c := l.categories[id]
		byCat[c] = append(byCat[c], id)
	}

	var groups []Group
	for _, c := range rationale.Categories {
		if ids, ok := byCat[c]; ok {
			groups = append(groups, Group{Category: c, IDs: ids})
			delete(byCat, c)
		}
	}
	rest := make([]rationale.Category, 0, len(byCat))
	for c := range byCat {
		rest = append(rest, c)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, c := range rest {
		groups = append(groups, Group{Category: c, IDs: byCat[c]})
	}
	return groups
}
