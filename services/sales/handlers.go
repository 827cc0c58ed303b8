package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SalesUseCaseInterface defines the use case consumed by the handlers.
type SalesUseCaseInterface interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest, authorization string) (*PlaceOrderResult, error)
	ListProductsWithStock(ctx context.Context, authorization string) ([]StockedProduct, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

// SalesHandler holds the HTTP handlers of the sales service.
type SalesHandler struct {
	useCase SalesUseCaseInterface
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(useCase SalesUseCaseInterface) *SalesHandler {
	return &SalesHandler{
		useCase: useCase,
	}
}

// PlaceOrderResponse is the invoice line plus the degraded-success marker.
type PlaceOrderResponse struct {
	InvoiceLine
	PartialSuccess bool   `json:"partialSuccess,omitempty"`
	Warning        string `json:"warning,omitempty"`
}

// PlaceOrder handles POST /api/sales/orders.
func (h *SalesHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.useCase.PlaceOrder(c.Request.Context(), req, c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, PlaceOrderResponse{
		InvoiceLine:    result.Invoice,
		PartialSuccess: result.PartialSuccess,
		Warning:        result.Warning,
	})
}

// ListProducts handles GET /api/sales/products.
func (h *SalesHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProductsWithStock(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListOrders handles GET /api/sales/orders.
func (h *SalesHandler) ListOrders(c *gin.Context) {
	orders, err := h.useCase.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// HealthCheck reports service health.
func (h *SalesHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sales-service",
	})
}

// statusForError maps each failure kind to its own HTTP status so callers
// can tell them apart.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrUpstreamRejected), errors.Is(err, ErrUpstreamMalformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
