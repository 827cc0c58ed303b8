package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository defines the storage operations of the catalog service:
// the product records it owns and the order-history records it receives from
// the sales service.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, name, description string, unitPrice int) (*Product, error)

	// RecordOrder appends an order-history record. History is append-only.
	RecordOrder(ctx context.Context, rec OrderRecord) (*OrderRecord, error)
	ListOrderRecords(ctx context.Context) ([]OrderRecord, error)
}

// PostgresCatalogRepository implements CatalogRepository using PostgreSQL.
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCatalogRepository creates a new PostgresCatalogRepository.
func NewPostgresCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

// ListProducts returns every product in the catalog.
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, unit_price
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateProduct inserts a product and returns it with its assigned id.
func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, name, description string, unitPrice int) (*Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, unit_price)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, unit_price
	`, name, description, unitPrice).Scan(&p.ID, &p.Name, &p.Description, &p.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// RecordOrder appends an order-history record.
func (r *PostgresCatalogRepository) RecordOrder(ctx context.Context, rec OrderRecord) (*OrderRecord, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_records (order_id, customer, product_id, quantity, placed_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rec.OrderID, rec.Customer, rec.ProductID, rec.Quantity, rec.PlacedOn.Time).Scan(&rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}
	return &rec, nil
}

// ListOrderRecords returns the full order history.
func (r *PostgresCatalogRepository) ListOrderRecords(ctx context.Context) ([]OrderRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, customer, product_id, quantity, placed_on
		FROM order_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list order records: %w", err)
	}
	defer rows.Close()

	records := []OrderRecord{}
	for rows.Next() {
		var (
			rec      OrderRecord
			placedOn time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.Customer, &rec.ProductID, &rec.Quantity, &placedOn); err != nil {
			return nil, fmt.Errorf("failed to scan order record: %w", err)
		}
		rec.PlacedOn = DateOf(placedOn)
		records = append(records, rec)
	}
	return records, rows.Err()
}
