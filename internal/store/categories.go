package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
	"github.com/Ruggero-R/EzSupply/internal/model"
	"github.com/Ruggero-R/EzSupply/internal/refcache"
)

// CategoryCacheTTL is the default freshness window for the category cache.
const CategoryCacheTTL = 5 * time.Minute

// Categories is the category repository. Reads go through a time-boxed cache;
// every mutation invalidates it before returning, so staleness is bounded by
// the TTL only when nothing is being changed.
type Categories struct {
	db    docstore.Store
	cache *refcache.Cache[model.Category]
}

// NewCategories creates the repository with the given cache TTL.
func NewCategories(db docstore.Store, ttl time.Duration) *Categories {
	r := &Categories{db: db}
	r.cache = refcache.New(ttl, r.fetchAll)
	return r
}

func (r *Categories) fetchAll(ctx context.Context) ([]model.Category, error) {
	docs, err := r.db.All(ctx, categoriesCollection)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories := make([]model.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, decodeCategory(doc.ID, doc.Fields))
	}
	return categories, nil
}

// List returns all categories, served from cache while fresh.
func (r *Categories) List(ctx context.Context) ([]model.Category, error) {
	return r.cache.GetAll(ctx)
}

// ForItem returns the categories whose ids appear in categoryIDs.
func (r *Categories) ForItem(ctx context.Context, categoryIDs []string) ([]model.Category, error) {
	return r.cache.GetFiltered(ctx, func(c model.Category) bool {
		return slices.Contains(categoryIDs, c.ID)
	})
}

// Create adds a category and returns its id.
func (r *Categories) Create(ctx context.Context, name string, icon *string) (string, error) {
	id, err := r.db.Add(ctx, categoriesCollection, docstore.Fields{
		"name": name,
		"icon": encodeOptString(icon),
	})
	if err != nil {
		return "", fmt.Errorf("creating category: %w", err)
	}

	r.cache.Invalidate()
	return id, nil
}

// Update renames a category or changes its icon.
func (r *Categories) Update(ctx context.Context, id, name string, icon *string) error {
	err := r.db.Merge(ctx, categoriesCollection, id, docstore.Fields{
		"name": name,
		"icon": encodeOptString(icon),
	})
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	r.cache.Invalidate()
	return nil
}

// Invalidate discards the cached category list.
func (r *Categories) Invalidate() {
	r.cache.Invalidate()
}
