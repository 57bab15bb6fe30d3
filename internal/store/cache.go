package store

import (
	"context"
	"time"

	"github.com/recipeway/recipeway/internal/recipe"
)

// CacheStore is the single-slot recipe cache. Exactly one snapshot exists at
// a time; loading a different viewer overwrites it (last viewer wins). The
// client never supports more than one active viewer per device.
type CacheStore struct {
	state *StateStore
}

func NewCacheStore(state *StateStore) *CacheStore {
	return &CacheStore{state: state}
}

// Get returns the cached snapshot for viewerEmail, or ErrNoSnapshot when the
// slot is empty or belongs to someone else.
func (c *CacheStore) Get(ctx context.Context, viewerEmail string) (*CachedRecipes, error) {
	st, err := c.state.Load(ctx)
	if err != nil {
		return nil, err
	}
	if st.CachedRecipes == nil || st.CachedRecipes.UserEmail != viewerEmail {
		return nil, ErrNoSnapshot
	}
	return st.CachedRecipes, nil
}

// Put overwrites the slot with records for viewerEmail, stamping lastUpdated
// and recomputing the derived category union.
func (c *CacheStore) Put(ctx context.Context, viewerEmail string, records []recipe.Record) error {
	return c.state.Update(ctx, func(st *State) {
		st.CachedRecipes = &CachedRecipes{
			UserEmail:   viewerEmail,
			Recipes:     records,
			LastUpdated: time.Now().UTC(),
			Categories:  categoryUnion(records),
		}
	})
}

// EqualRecords reports order-independent deep equality of two record sets:
// same cardinality, same id set, and field-wise equality per shared id.
func EqualRecords(a, b []recipe.Record) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[string]recipe.Record, len(b))
	for _, r := range b {
		byID[r.ID] = r
	}
	for _, r := range a {
		other, ok := byID[r.ID]
		if !ok || !recipe.Equal(r, other) {
			return false
		}
	}
	return true
}

func categoryUnion(records []recipe.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for _, c := range r.Categories {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	recipe.SortCategories(out)
	return out
}
