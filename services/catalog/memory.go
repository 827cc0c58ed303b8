package main

import (
	"context"
	"sync"
)

// MemoryCatalogRepository implements CatalogRepository with in-process maps.
// It backs the service when no DATABASE_URL is configured and the unit tests.
type MemoryCatalogRepository struct {
	mu            sync.Mutex
	products      []Product
	orderRecords  []OrderRecord
	nextProductID int
	nextRecordID  int
}

// NewMemoryCatalogRepository creates an empty in-memory repository.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{nextProductID: 1, nextRecordID: 1}
}

func (r *MemoryCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryCatalogRepository) CreateProduct(ctx context.Context, name, description string, unitPrice int) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := Product{ID: r.nextProductID, Name: name, Description: description, UnitPrice: unitPrice}
	r.nextProductID++
	r.products = append(r.products, p)
	return &p, nil
}

func (r *MemoryCatalogRepository) RecordOrder(ctx context.Context, rec OrderRecord) (*OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextRecordID
	r.nextRecordID++
	r.orderRecords = append(r.orderRecords, rec)
	return &rec, nil
}

func (r *MemoryCatalogRepository) ListOrderRecords(ctx context.Context) ([]OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]OrderRecord, len(r.orderRecords))
	copy(out, r.orderRecords)
	return out, nil
}
