package main

// Product is a catalog entry. UnitPrice is in minor currency units.
type Product struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	UnitPrice   int    `json:"unitPrice" db:"unit_price"`
}

// CreateProductRequest registers a new product.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UnitPrice   int    `json:"unitPrice" binding:"required,gt=0"`
}

// OrderRecord is the catalog's historical copy of an order placed through
// the sales service. OrderID is the id the sales ledger assigned; ID is
// local to this service.
type OrderRecord struct {
	ID        int    `json:"id" db:"id"`
	OrderID   int    `json:"orderId" db:"order_id"`
	Customer  string `json:"customer" db:"customer"`
	ProductID int    `json:"productId" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
	PlacedOn  Date   `json:"placedOn" db:"placed_on"`
}

// RecordOrderRequest is the payload the sales service sends after it has
// durably persisted an order.
type RecordOrderRequest struct {
	OrderID   int    `json:"id" binding:"required"`
	Customer  string `json:"customer" binding:"required"`
	ProductID int    `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	PlacedOn  Date   `json:"placedOn"`
}
