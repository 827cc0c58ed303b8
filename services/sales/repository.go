package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository defines the order-ledger storage. The ledger is
// append-only: orders are created once and never updated.
type OrderRepository interface {
	// CreateOrder persists the order and returns it with its assigned id.
	CreateOrder(ctx context.Context, order *Order) (*Order, error)

	ListOrders(ctx context.Context) ([]Order, error)
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository.
func NewPostgresOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// CreateOrder inserts the order and returns it with the id the database
// assigned.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (customer, product_id, quantity, placed_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, order.Customer, order.ProductID, order.Quantity, order.PlacedOn.Time).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// ListOrders returns every order in the ledger.
func (r *PostgresOrderRepository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer, product_id, quantity, placed_on
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var (
			order    Order
			placedOn time.Time
		)
		if err := rows.Scan(&order.ID, &order.Customer, &order.ProductID, &order.Quantity, &placedOn); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.PlacedOn = DateOf(placedOn)
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
