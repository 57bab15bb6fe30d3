// Package sync implements the read-through, stale-while-revalidate recipe
// cache: cached data is served immediately, an authoritative fetch runs in
// the background, and the consumer is notified only when the two diverge.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/recipeway/recipeway/internal/recipe"
	"github.com/recipeway/recipeway/internal/store"
)

// RecipeService is the remote collaborator. The list response may already
// merge several owners' recipes; which owners are visible is resolved
// server-side from the consent edges.
type RecipeService interface {
	ListRecipes(ctx context.Context, viewer string) ([]recipe.Record, error)
	CreateRecipe(ctx context.Context, owner, text string) (*recipe.Record, error)
	UpdateRecipe(ctx context.Context, owner string, rec recipe.Record) (*recipe.Record, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// UpdateFunc receives the diverged authoritative set together with the
// filters captured at notification time.
type UpdateFunc func(records []recipe.Record, filters FilterSnapshot)

// Coordinator orchestrates loads against the single-slot cache. The design
// assumes one load cycle per viewer per session; background reconciliations
// are neither retried nor deduplicated.
type Coordinator struct {
	cache    *store.CacheStore
	remote   RecipeService
	filters  FilterProvider
	onUpdate UpdateFunc
}

func NewCoordinator(cache *store.CacheStore, remote RecipeService, filters FilterProvider, onUpdate UpdateFunc) *Coordinator {
	if filters == nil {
		filters = func() FilterSnapshot { return FilterSnapshot{} }
	}
	return &Coordinator{cache: cache, remote: remote, filters: filters, onUpdate: onUpdate}
}

// Load returns the viewer's recipes. On a cache hit the cached records come
// back immediately along with a handle to the background reconciliation just
// started; the consumer must Cancel the handle on teardown or it may still
// be notified. On a miss the fetch is synchronous and its failure is
// terminal: no partial data is returned.
func (c *Coordinator) Load(ctx context.Context, viewer string) ([]recipe.Record, *Reconcile, error) {
	snap, err := c.cache.Get(ctx, viewer)
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		return nil, nil, fmt.Errorf("sync: read cache: %w", err)
	}

	if err == nil {
		rec := newReconcile()
		go c.reconcile(rec, viewer, snap.Recipes)
		return snap.Recipes, rec, nil
	}

	records, err := c.remote.ListRecipes(ctx, viewer)
	if err != nil {
		return nil, nil, fmt.Errorf("sync: load recipes: %w", err)
	}
	if err := c.cache.Put(ctx, viewer, records); err != nil {
		return nil, nil, fmt.Errorf("sync: populate cache: %w", err)
	}
	return records, nil, nil
}

// reconcile fetches the authoritative set and replaces the whole snapshot on
// any divergence. Replace-on-divergence is deliberate: the set is one
// household's recipes, and equality is already id-keyed, so fine-grained
// patching buys nothing. Failures are logged and swallowed; the consumer
// keeps the stale data it already has.
func (c *Coordinator) reconcile(rec *Reconcile, viewer string, cached []recipe.Record) {
	defer close(rec.done)

	records, err := c.remote.ListRecipes(rec.ctx, viewer)
	if err != nil {
		log.Printf("sync: background reconcile for %s: %v", viewer, err)
		return
	}
	if store.EqualRecords(cached, records) {
		return
	}

	if err := c.cache.Put(rec.ctx, viewer, records); err != nil {
		log.Printf("sync: background cache update for %s: %v", viewer, err)
		return
	}
	rec.changed = true

	// Cancelled consumers are torn down; firing the callback would act on
	// a stale view.
	if rec.ctx.Err() != nil || c.onUpdate == nil {
		return
	}
	c.onUpdate(records, c.filters())
}

// Create submits raw text for extraction and appends the returned record to
// the snapshot optimistically. Reconciliation on the next load settles any
// difference with the authoritative set.
func (c *Coordinator) Create(ctx context.Context, viewer, text string) (*recipe.Record, error) {
	rec, err := c.remote.CreateRecipe(ctx, viewer, text)
	if err != nil {
		return nil, fmt.Errorf("sync: create recipe: %w", err)
	}
	c.patchCache(ctx, viewer, func(records []recipe.Record) []recipe.Record {
		return append(records, *rec)
	})
	return rec, nil
}

// Update pushes an edited record and merges the stored version back by id.
func (c *Coordinator) Update(ctx context.Context, viewer string, edited recipe.Record) (*recipe.Record, error) {
	rec, err := c.remote.UpdateRecipe(ctx, viewer, edited)
	if err != nil {
		return nil, fmt.Errorf("sync: update recipe: %w", err)
	}
	c.patchCache(ctx, viewer, func(records []recipe.Record) []recipe.Record {
		for i := range records {
			if records[i].ID == rec.ID {
				records[i] = *rec
			}
		}
		return records
	})
	return rec, nil
}

// Delete removes the record remotely and filters it out of the snapshot.
func (c *Coordinator) Delete(ctx context.Context, viewer, id string) error {
	if err := c.remote.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("sync: delete recipe: %w", err)
	}
	c.patchCache(ctx, viewer, func(records []recipe.Record) []recipe.Record {
		out := records[:0]
		for _, r := range records {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out
	})
	return nil
}

// patchCache applies fn to the snapshot when the slot belongs to viewer.
// Mutations are optimistic; a cache write failure is logged, not surfaced,
// because the remote write already succeeded.
func (c *Coordinator) patchCache(ctx context.Context, viewer string, fn func([]recipe.Record) []recipe.Record) {
	snap, err := c.cache.Get(ctx, viewer)
	if err != nil {
		if !errors.Is(err, store.ErrNoSnapshot) {
			log.Printf("sync: patch cache for %s: %v", viewer, err)
		}
		return
	}
	if err := c.cache.Put(ctx, viewer, fn(snap.Recipes)); err != nil {
		log.Printf("sync: patch cache for %s: %v", viewer, err)
	}
}

// Reconcile is the handle to one background reconciliation.
type Reconcile struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	changed bool
}

func newReconcile() *Reconcile {
	ctx, cancel := context.WithCancel(context.Background())
	return &Reconcile{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// Cancel aborts the reconciliation. A consumer being torn down must call it
// so the update callback cannot fire afterwards.
func (r *Reconcile) Cancel() { r.cancel() }

// Done is closed when the reconciliation has finished, whatever the outcome.
func (r *Reconcile) Done() <-chan struct{} { return r.done }

// Changed reports whether the cache was replaced. Valid only after Done.
func (r *Reconcile) Changed() bool { return r.changed }
