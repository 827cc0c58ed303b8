package main

import (
	"context"
	"sync"
)

// MemoryStockRepository implements StockRepository with an in-process map.
// It backs the service when no DATABASE_URL is configured and the unit tests.
type MemoryStockRepository struct {
	mu      sync.Mutex
	records []StockRecord
	nextID  int
}

// NewMemoryStockRepository creates an empty in-memory repository.
func NewMemoryStockRepository() *MemoryStockRepository {
	return &MemoryStockRepository{nextID: 1}
}

// ListStock returns a copy of every stock record.
func (r *MemoryStockRepository) ListStock(ctx context.Context) ([]StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]StockRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// CreateStock appends a new record and assigns the next id.
func (r *MemoryStockRepository) CreateStock(ctx context.Context, productID, quantityOnHand int) (*StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := StockRecord{ID: r.nextID, ProductID: productID, QuantityOnHand: quantityOnHand}
	r.nextID++
	r.records = append(r.records, rec)
	return &rec, nil
}

// Decrement performs the conditional decrement inside a single critical
// section, which is what makes concurrent orders against the same product
// safe: the check and the write can never interleave.
func (r *MemoryStockRepository) Decrement(ctx context.Context, productID, quantity int) (*StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i := range r.records {
		if r.records[i].ProductID != productID {
			continue
		}
		found = true
		if r.records[i].QuantityOnHand >= quantity {
			r.records[i].QuantityOnHand -= quantity
			rec := r.records[i]
			return &rec, nil
		}
	}

	if !found {
		return nil, ErrStockNotFound
	}
	return nil, ErrInsufficientStock
}
