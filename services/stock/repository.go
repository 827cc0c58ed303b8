package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockRepository defines the storage operations for stock records.
type StockRepository interface {
	ListStock(ctx context.Context) ([]StockRecord, error)

	CreateStock(ctx context.Context, productID, quantityOnHand int) (*StockRecord, error)

	// Decrement subtracts quantity from one of the product's stock records
	// as a single atomic read-modify-write. Two concurrent callers can never
	// both succeed against quantity that only covers one of them.
	Decrement(ctx context.Context, productID, quantity int) (*StockRecord, error)
}

// PostgresStockRepository implements StockRepository using PostgreSQL.
type PostgresStockRepository struct {
	db *pgxpool.Pool
}

// NewPostgresStockRepository creates a new PostgresStockRepository.
func NewPostgresStockRepository(db *pgxpool.Pool) StockRepository {
	return &PostgresStockRepository{
		db: db,
	}
}

// ListStock returns every stock record.
func (r *PostgresStockRepository) ListStock(ctx context.Context) ([]StockRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, quantity_on_hand
		FROM stock_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	defer rows.Close()

	records := []StockRecord{}
	for rows.Next() {
		var rec StockRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.QuantityOnHand); err != nil {
			return nil, fmt.Errorf("failed to scan stock record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateStock inserts a new stock record and returns it with its assigned id.
func (r *PostgresStockRepository) CreateStock(ctx context.Context, productID, quantityOnHand int) (*StockRecord, error) {
	var rec StockRecord
	err := r.db.QueryRow(ctx, `
		INSERT INTO stock_records (product_id, quantity_on_hand)
		VALUES ($1, $2)
		RETURNING id, product_id, quantity_on_hand
	`, productID, quantityOnHand).Scan(&rec.ID, &rec.ProductID, &rec.QuantityOnHand)
	if err != nil {
		return nil, fmt.Errorf("failed to create stock record: %w", err)
	}
	return &rec, nil
}

// Decrement runs the conditional decrement as one statement. The row lock
// taken by the inner SELECT serializes concurrent decrements of the same
// product, so stock can never go negative.
func (r *PostgresStockRepository) Decrement(ctx context.Context, productID, quantity int) (*StockRecord, error) {
	var rec StockRecord
	err := r.db.QueryRow(ctx, `
		UPDATE stock_records
		SET quantity_on_hand = quantity_on_hand - $2
		WHERE id = (
			SELECT id FROM stock_records
			WHERE product_id = $1 AND quantity_on_hand >= $2
			ORDER BY id
			LIMIT 1
			FOR UPDATE
		)
		RETURNING id, product_id, quantity_on_hand
	`, productID, quantity).Scan(&rec.ID, &rec.ProductID, &rec.QuantityOnHand)

	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM stock_records WHERE product_id = $1)", productID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check product stock: %w", err)
		}
		if !exists {
			return nil, ErrStockNotFound
		}
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return &rec, nil
}
