package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StockUseCaseInterface defines the use case consumed by the handlers.
type StockUseCaseInterface interface {
	ListStock(ctx context.Context) ([]StockRecord, error)
	AddStock(ctx context.Context, req CreateStockRequest) (*StockRecord, error)
	Decrement(ctx context.Context, req DecrementRequest) (*StockRecord, error)
}

// StockHandler holds the HTTP handlers of the inventory service.
type StockHandler struct {
	useCase StockUseCaseInterface
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(useCase StockUseCaseInterface) *StockHandler {
	return &StockHandler{
		useCase: useCase,
	}
}

// ListStock handles GET /api/stock/products.
func (h *StockHandler) ListStock(c *gin.Context) {
	records, err := h.useCase.ListStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddStock handles POST /api/stock/products.
func (h *StockHandler) AddStock(c *gin.Context) {
	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.useCase.AddStock(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Decrement handles POST /api/stock/decrement. Unknown products map to 404
// and insufficient quantity to 409 so callers can tell the two apart.
func (h *StockHandler) Decrement(c *gin.Context) {
	var req DecrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.useCase.Decrement(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrStockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, rec)
	}
}

// HealthCheck reports service health.
func (h *StockHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stock-service",
	})
}
