package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUseCase returns canned results so the handler's error mapping can be
// exercised without real gateways.
type stubUseCase struct {
	result  *PlaceOrderResult
	err     error
	gotAuth string
}

func (s *stubUseCase) PlaceOrder(ctx context.Context, req PlaceOrderRequest, authorization string) (*PlaceOrderResult, error) {
	s.gotAuth = authorization
	return s.result, s.err
}

func (s *stubUseCase) ListProductsWithStock(ctx context.Context, authorization string) ([]StockedProduct, error) {
	s.gotAuth = authorization
	return nil, s.err
}

func (s *stubUseCase) ListOrders(ctx context.Context) ([]Order, error) {
	return []Order{}, nil
}

func newTestRouter(stub *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewSalesHandler(stub)
	r := gin.New()
	api := r.Group("/api/sales")
	api.GET("/products", handler.ListProducts)
	api.POST("/orders", handler.PlaceOrder)
	api.GET("/orders", handler.ListOrders)
	return r
}

func TestPlaceOrderHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
		{"product not found", ErrProductNotFound, http.StatusNotFound},
		{"insufficient stock", ErrInsufficientStock, http.StatusConflict},
		{"upstream unavailable", ErrUpstreamUnavailable, http.StatusGatewayTimeout},
		{"upstream rejected", ErrUpstreamRejected, http.StatusBadGateway},
		{"upstream malformed", ErrUpstreamMalformed, http.StatusBadGateway},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubUseCase{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/sales/orders",
				strings.NewReader(`{"customer":"alice","productId":7,"quantity":3}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPlaceOrderHandler_PartialSuccessResponse(t *testing.T) {
	stub := &stubUseCase{result: &PlaceOrderResult{
		Invoice: InvoiceLine{
			OrderID: 1, Customer: "alice", ProductID: 7, ProductName: "Widget",
			UnitPrice: 500, Quantity: 3, Total: 1500, PlacedOn: Today(),
		},
		PartialSuccess: true,
		Warning:        "order 1 placed but catalog notification failed: upstream unavailable",
	}}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/sales/orders",
		strings.NewReader(`{"customer":"alice","productId":7,"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// PartialSuccess is not an error to the caller, just observable.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"partialSuccess":true`)
	assert.Contains(t, w.Body.String(), `"total":1500`)
	assert.Equal(t, "Bearer tok", stub.gotAuth, "caller identity is forwarded to the saga")
}
