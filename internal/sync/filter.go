package sync

import (
	"slices"
	"strings"

	"github.com/recipeway/recipeway/internal/recipe"
)

// FilterSnapshot is a point-in-time capture of the viewer's active filters.
// The coordinator captures one at notification time so a deferred update can
// be re-filtered without disturbing whatever the user has typed since.
type FilterSnapshot struct {
	Search     string
	Categories []string
}

// FilterProvider returns the filters active right now. The coordinator calls
// it at the moment it notifies, not at load time.
type FilterProvider func() FilterSnapshot

// Match reports whether a record passes the snapshot: the search text must
// appear in the title, an ingredient, or an instruction, and every selected
// category must be present on the record.
func (f FilterSnapshot) Match(r recipe.Record) bool {
	if f.Search != "" && !matchesSearch(r, f.Search) {
		return false
	}
	for _, c := range f.Categories {
		if !slices.Contains(r.Categories, c) {
			return false
		}
	}
	return true
}

// Apply filters records, keeping input order.
func (f FilterSnapshot) Apply(records []recipe.Record) []recipe.Record {
	var out []recipe.Record
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r recipe.Record, search string) bool {
	if strings.Contains(r.Title, search) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(ing, search) {
			return true
		}
	}
	for _, inst := range r.Instructions {
		if strings.Contains(inst, search) {
			return true
		}
	}
	return false
}
