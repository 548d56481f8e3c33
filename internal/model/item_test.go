package model

import (
	"testing"
	"time"
)

func TestTotalQuantity(t *testing.T) {
	item := &Item{
		Batches: []ItemBatch{
			{Quantity: 2},
			{Quantity: 1},
		},
	}
	if got := item.TotalQuantity(); got != 3 {
		t.Errorf("expected total 3, got %v", got)
	}
}

func TestTotalQuantityNoBatches(t *testing.T) {
	item := &Item{Batches: []ItemBatch{}}
	if got := item.TotalQuantity(); got != 0 {
		t.Errorf("expected total 0, got %v", got)
	}
}

func TestTotalQuantityZeroQuantityBatch(t *testing.T) {
	exp := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	item := &Item{
		Batches: []ItemBatch{
			{Quantity: 0, ExpirationDate: &exp},
			{Quantity: 4},
		},
	}
	if got := item.TotalQuantity(); got != 4 {
		t.Errorf("expected total 4, got %v", got)
	}
}

func TestBelowThreshold(t *testing.T) {
	item := &Item{
		MinThreshold: 2,
		Batches:      []ItemBatch{{Quantity: 1}},
	}
	if !item.BelowThreshold() {
		t.Error("expected item below threshold")
	}

	item.Batches = append(item.Batches, ItemBatch{Quantity: 5})
	if item.BelowThreshold() {
		t.Error("expected item above threshold")
	}
}
