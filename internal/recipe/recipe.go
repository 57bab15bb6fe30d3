package recipe

import (
	"errors"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// ErrIncomplete is returned by Validate when a record is missing one of
	// the fields required before it may be persisted.
	ErrIncomplete = errors.New("recipe is missing title, ingredients, or instructions")
)

// Vocabulary is the fixed category list the extraction pipeline chooses from.
// The codec and the filters treat any other string as a free-form category,
// but the service only ever produces these.
var Vocabulary = []string{
	"מרקים", "סלטים", "מנות עיקריות", "תוספות", "מאפים", "קינוחים",
	"לחמים", "ארוחות בוקר", "משקאות", "חטיפים", "פסטה", "פיצות",
	"דגים", "עוף", "בקר", "טבעוני", "צמחוני", "ללא גלוטן", "חגים",
}

// Record is one recipe as held by the client. The service owns the record;
// the client only keeps copies in its local cache.
type Record struct {
	ID           string   `json:"id"`
	Owner        string   `json:"ownerUserId"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Categories   []string `json:"categories,omitempty"`
	URL          string   `json:"url,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// Validate reports whether the record may be persisted. The text codec never
// fails, so every save path must call this before pushing an edit.
func (r *Record) Validate() error {
	if r.Title == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		return ErrIncomplete
	}
	return nil
}

// Equal reports field-wise equality of two records. Ingredient and
// instruction order is significant; category order is not.
func Equal(a, b Record) bool {
	if a.ID != b.ID || a.Owner != b.Owner || a.Title != b.Title ||
		a.URL != b.URL || a.Notes != b.Notes {
		return false
	}
	if !slices.Equal(a.Ingredients, b.Ingredients) {
		return false
	}
	if !slices.Equal(a.Instructions, b.Instructions) {
		return false
	}
	if len(a.Categories) != len(b.Categories) {
		return false
	}
	for _, c := range a.Categories {
		if !slices.Contains(b.Categories, c) {
			return false
		}
	}
	return true
}

// SortCategories orders category names for display using Hebrew collation,
// so the derived category set renders stably regardless of record order.
func SortCategories(categories []string) {
	c := collate.New(language.Hebrew)
	c.SortStrings(categories)
}
