package main

import (
	"context"
	"sync"
)

// MemoryOrderRepository implements OrderRepository with an in-process slice.
// It backs the service when no DATABASE_URL is configured and the unit tests.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders []Order
	nextID int
}

// NewMemoryOrderRepository creates an empty in-memory ledger.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{nextID: 1}
}

func (r *MemoryOrderRepository) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, *order)
	return order, nil
}

func (r *MemoryOrderRepository) ListOrders(ctx context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
