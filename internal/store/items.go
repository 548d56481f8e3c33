package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
	"github.com/Ruggero-R/EzSupply/internal/model"
)

// Items is the item repository. Items are never cached: every read hits the
// store so concurrent household members always see fresh quantities.
type Items struct {
	DB docstore.Store
}

// List returns all items.
func (r *Items) List(ctx context.Context) ([]model.Item, error) {
	docs, err := r.DB.All(ctx, itemsCollection)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := make([]model.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *decodeItem(doc.ID, doc.Fields))
	}
	return items, nil
}

// Get returns an item by id, or (nil, nil) if it does not exist.
func (r *Items) Get(ctx context.Context, id string) (*model.Item, error) {
	raw, err := r.DB.Get(ctx, itemsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	return decodeItem(id, raw), nil
}

// Create writes a new item and returns its store-assigned id. lastUpdate is
// stamped at write time regardless of the caller's value.
func (r *Items) Create(ctx context.Context, item *model.Item) (string, error) {
	id, err := r.DB.Add(ctx, itemsCollection, encodeItem(item, time.Now()))
	if err != nil {
		return "", fmt.Errorf("creating item: %w", err)
	}
	return id, nil
}

// Update merge-upserts the full encoded record. Because the record always
// carries every declared field (nulls for absent optionals), an update fully
// replaces location, notes, and the whole batches sequence; there is no
// partial batch update.
func (r *Items) Update(ctx context.Context, id string, item *model.Item) error {
	if err := r.DB.Merge(ctx, itemsCollection, id, encodeItem(item, time.Now())); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// Delete removes the item document.
func (r *Items) Delete(ctx context.Context, id string) error {
	if err := r.DB.Delete(ctx, itemsCollection, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}
