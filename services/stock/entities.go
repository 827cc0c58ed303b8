package main

import "errors"

var (
	// ErrStockNotFound means no stock record exists for the requested product.
	ErrStockNotFound = errors.New("product not found in stock")
	// ErrInsufficientStock means no single record holds enough quantity to
	// satisfy the requested decrement.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockRecord is one shard of a product's on-hand quantity. Inventory may
// hold more than one record per product; readers sum them.
type StockRecord struct {
	ID             int `json:"id" db:"id"`
	ProductID      int `json:"productId" db:"product_id"`
	QuantityOnHand int `json:"quantityOnHand" db:"quantity_on_hand"`
}

// CreateStockRequest registers a new stock record for a product.
type CreateStockRequest struct {
	ProductID      int `json:"productId" binding:"required,gt=0"`
	QuantityOnHand int `json:"quantityOnHand" binding:"gte=0"`
}

// DecrementRequest asks the store to subtract quantity from one product's
// stock as a single atomic operation.
type DecrementRequest struct {
	ProductID int `json:"productId" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}
