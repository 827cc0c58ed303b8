package main

// Product mirrors the catalog service's product payload. The orchestrator
// treats products as read-only.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int    `json:"unitPrice"`
}

// StockRecord mirrors the stock service's payload. Inventory may list the
// same product more than once; quantities are summed when decorating.
type StockRecord struct {
	ID             int `json:"id"`
	ProductID      int `json:"productId"`
	QuantityOnHand int `json:"quantityOnHand"`
}

// StockedProduct is the read model served by the product listing: a catalog
// product decorated with the quantity available in inventory.
type StockedProduct struct {
	Product
	QuantityAvailable int `json:"quantityAvailable"`
}

// Order is the ledger entity. Orders are append-only: created once by the
// place-order saga and never mutated.
type Order struct {
	ID        int    `json:"id" db:"id"`
	Customer  string `json:"customer" db:"customer"`
	ProductID int    `json:"productId" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
	PlacedOn  Date   `json:"placedOn" db:"placed_on"`
}

// NewOrder creates an order dated today. The ledger assigns the id.
func NewOrder(customer string, productID, quantity int) *Order {
	return &Order{
		Customer:  customer,
		ProductID: productID,
		Quantity:  quantity,
		PlacedOn:  Today(),
	}
}

// InvoiceLine is the transient result of a placed order. It is derived from
// the product snapshot and the persisted order, never stored.
type InvoiceLine struct {
	OrderID     int    `json:"orderId"`
	Customer    string `json:"customer"`
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int    `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Total       int    `json:"total"`
	PlacedOn    Date   `json:"placedOn"`
}

// NewInvoiceLine builds the invoice line for a persisted order.
func NewInvoiceLine(order *Order, product Product) InvoiceLine {
	return InvoiceLine{
		OrderID:     order.ID,
		Customer:    order.Customer,
		ProductID:   order.ProductID,
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice,
		Quantity:    order.Quantity,
		Total:       product.UnitPrice * order.Quantity,
		PlacedOn:    order.PlacedOn,
	}
}

// PlaceOrderRequest is the caller's input. Preconditions are checked by the
// use case so that invalid requests never reach an upstream service.
type PlaceOrderRequest struct {
	Customer  string `json:"customer"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderResult carries the invoice line plus the degraded-success flag
// set when the post-commit catalog notification failed. The order stands
// either way.
type PlaceOrderResult struct {
	Invoice        InvoiceLine
	PartialSuccess bool
	Warning        string
}
