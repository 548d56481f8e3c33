package model

import "time"

// Item represents a tracked household supply. Its total quantity is derived
// from its batches, never stored separately.
type Item struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Unit         string      `json:"unit"`
	MinThreshold float64     `json:"min_threshold"`
	CategoryIDs  []string    `json:"category_ids"`
	Batches      []ItemBatch `json:"batches"`
	Location     *string     `json:"location,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	LastUpdate   time.Time   `json:"last_update"`
	UpdatedBy    string      `json:"updated_by"`
}

// ItemBatch is one purchase lot of an item. A batch has no identity of its
// own; it lives only inside its item's Batches slice.
type ItemBatch struct {
	Quantity       float64    `json:"quantity"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
}

// TotalQuantity sums the quantities of all batches.
func (i *Item) TotalQuantity() float64 {
	var total float64
	for _, b := range i.Batches {
		total += b.Quantity
	}
	return total
}

// BelowThreshold reports whether the item's total quantity has dropped under
// its restock threshold.
func (i *Item) BelowThreshold() bool {
	return i.TotalQuantity() < i.MinThreshold
}
