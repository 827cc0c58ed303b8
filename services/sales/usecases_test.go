package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

// MockCatalogClient mocks the catalog gateway.
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListProducts(ctx context.Context, authorization string) ([]Product, error) {
	args := m.Called(ctx, authorization)
	if p := args.Get(0); p != nil {
		return p.([]Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogClient) RecordOrder(ctx context.Context, order *Order, authorization string) error {
	args := m.Called(ctx, order, authorization)
	return args.Error(0)
}

// MockStockClient mocks the inventory gateway.
type MockStockClient struct {
	mock.Mock
}

func (m *MockStockClient) ListStock(ctx context.Context, authorization string) ([]StockRecord, error) {
	args := m.Called(ctx, authorization)
	if r := args.Get(0); r != nil {
		return r.([]StockRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockClient) Decrement(ctx context.Context, productID, quantity int, authorization string) (*StockRecord, error) {
	args := m.Called(ctx, productID, quantity, authorization)
	if r := args.Get(0); r != nil {
		return r.(*StockRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderRepository mocks the order ledger.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	args := m.Called(ctx, order)
	if o := args.Get(0); o != nil {
		return o.(*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Order), args.Error(1)
}

func newUseCase(ledger OrderRepository, catalog CatalogClient, stock StockClient) *SalesUseCase {
	return NewSalesUseCase(ledger, catalog, stock, otel.Tracer("test"), otel.Meter("test"))
}

var widgetCatalog = []Product{
	{ID: 7, Name: "Widget", Description: "a widget", UnitPrice: 500},
	{ID: 8, Name: "Gadget", Description: "a gadget", UnitPrice: 900},
}

func TestPlaceOrder_Success(t *testing.T) {
	// Arrange
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	ledger := NewMemoryOrderRepository()
	catalog.On("ListProducts", mock.Anything, "Bearer tok").Return(widgetCatalog, nil)
	stock.On("Decrement", mock.Anything, 7, 3, "Bearer tok").
		Return(&StockRecord{ID: 1, ProductID: 7, QuantityOnHand: 7}, nil)
	catalog.On("RecordOrder", mock.Anything, mock.Anything, "Bearer tok").Return(nil)

	uc := newUseCase(ledger, catalog, stock)

	// Act
	result, err := uc.PlaceOrder(context.Background(),
		PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: 3}, "Bearer tok")

	// Assert
	require.NoError(t, err)
	assert.False(t, result.PartialSuccess)
	assert.Equal(t, "alice", result.Invoice.Customer)
	assert.Equal(t, "Widget", result.Invoice.ProductName)
	assert.Equal(t, 500, result.Invoice.UnitPrice)
	assert.Equal(t, 3, result.Invoice.Quantity)
	assert.Equal(t, 1500, result.Invoice.Total)
	assert.Equal(t, Today(), result.Invoice.PlacedOn)

	orders, err := ledger.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orders[0].ID, result.Invoice.OrderID)

	catalog.AssertExpectations(t)
	stock.AssertExpectations(t)
}

func TestPlaceOrder_InvalidRequest(t *testing.T) {
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	uc := newUseCase(NewMemoryOrderRepository(), catalog, stock)

	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"empty customer", PlaceOrderRequest{Customer: "  ", ProductID: 7, Quantity: 1}},
		{"zero quantity", PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: 0}},
		{"negative quantity", PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.PlaceOrder(context.Background(), tt.req, "")
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}

	// Precondition violations never reach an upstream service.
	catalog.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
	stock.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	ledger := NewMemoryOrderRepository()
	catalog.On("ListProducts", mock.Anything, "").Return(widgetCatalog, nil)

	uc := newUseCase(ledger, catalog, stock)

	_, err := uc.PlaceOrder(context.Background(),
		PlaceOrderRequest{Customer: "alice", ProductID: 42, Quantity: 1}, "")

	assert.ErrorIs(t, err, ErrProductNotFound)

	// The saga halts before any inventory call is issued.
	stock.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	orders, _ := ledger.ListOrders(context.Background())
	assert.Empty(t, orders)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	ledger := NewMemoryOrderRepository()
	catalog.On("ListProducts", mock.Anything, "").Return(widgetCatalog, nil)
	stock.On("Decrement", mock.Anything, 7, 999, "").Return(nil, ErrInsufficientStock)

	uc := newUseCase(ledger, catalog, stock)

	_, err := uc.PlaceOrder(context.Background(),
		PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: 999}, "")

	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was committed: no ledger entry, no catalog notification.
	orders, _ := ledger.ListOrders(context.Background())
	assert.Empty(t, orders)
	catalog.AssertNotCalled(t, "RecordOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_PartialSuccessWhenNotificationFails(t *testing.T) {
	// Steps 1-3 succeed, the post-commit catalog notification does not. The
	// caller still gets the invoice line and the decrement is kept.
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	ledger := NewMemoryOrderRepository()
	catalog.On("ListProducts", mock.Anything, "").Return(widgetCatalog, nil)
	stock.On("Decrement", mock.Anything, 7, 3, "").
		Return(&StockRecord{ID: 1, ProductID: 7, QuantityOnHand: 7}, nil)
	catalog.On("RecordOrder", mock.Anything, mock.Anything, "").Return(ErrUpstreamUnavailable)

	uc := newUseCase(ledger, catalog, stock)

	result, err := uc.PlaceOrder(context.Background(),
		PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: 3}, "")

	require.NoError(t, err)
	assert.True(t, result.PartialSuccess)
	assert.Contains(t, result.Warning, "catalog notification failed")
	assert.Equal(t, 1500, result.Invoice.Total)

	orders, _ := ledger.ListOrders(context.Background())
	require.Len(t, orders, 1, "the order stands despite the failed notification")

	// No compensation: the only stock call is the original decrement.
	stock.AssertNumberOfCalls(t, "Decrement", 1)
}

func TestPlaceOrder_LedgerFailureIsNotCompensated(t *testing.T) {
	// A ledger write failure after a successful decrement aborts the saga
	// without undoing the decrement. Known inconsistency window, reconciled
	// out of band.
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	ledger := new(MockOrderRepository)
	catalog.On("ListProducts", mock.Anything, "").Return(widgetCatalog, nil)
	stock.On("Decrement", mock.Anything, 7, 3, "").
		Return(&StockRecord{ID: 1, ProductID: 7, QuantityOnHand: 7}, nil)
	ledger.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	uc := newUseCase(ledger, catalog, stock)

	_, err := uc.PlaceOrder(context.Background(),
		PlaceOrderRequest{Customer: "alice", ProductID: 7, Quantity: 3}, "")

	require.Error(t, err)
	catalog.AssertNotCalled(t, "RecordOrder", mock.Anything, mock.Anything, mock.Anything)
	stock.AssertNumberOfCalls(t, "Decrement", 1)
}

func TestListProductsWithStock(t *testing.T) {
	catalog := new(MockCatalogClient)
	stock := new(MockStockClient)
	catalog.On("ListProducts", mock.Anything, "").Return(widgetCatalog, nil)
	stock.On("ListStock", mock.Anything, "").Return([]StockRecord{
		{ID: 1, ProductID: 7, QuantityOnHand: 4},
		{ID: 2, ProductID: 7, QuantityOnHand: 6},
		{ID: 3, ProductID: 99, QuantityOnHand: 5},
	}, nil)

	uc := newUseCase(NewMemoryOrderRepository(), catalog, stock)

	products, err := uc.ListProductsWithStock(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 10, products[0].QuantityAvailable, "duplicate stock records are summed")
	assert.Equal(t, 0, products[1].QuantityAvailable, "missing stock defaults to zero")
}

func TestDecorateWithStock_MergeRules(t *testing.T) {
	products := []Product{{ID: 1, Name: "A", UnitPrice: 10}, {ID: 2, Name: "B", UnitPrice: 20}}
	stocks := []StockRecord{
		{ID: 1, ProductID: 2, QuantityOnHand: 3},
		{ID: 2, ProductID: 2, QuantityOnHand: 4},
		{ID: 3, ProductID: 5, QuantityOnHand: 9}, // not in catalog, ignored
	}

	got := decorateWithStock(products, stocks)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].QuantityAvailable)
	assert.Equal(t, 7, got[1].QuantityAvailable)

	// The join is insensitive to the order either snapshot arrives in.
	reversed := decorateWithStock(products, []StockRecord{stocks[2], stocks[1], stocks[0]})
	assert.Equal(t, got, reversed)
}
