package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogUseCaseInterface defines the use case consumed by the handlers.
type CatalogUseCaseInterface interface {
	ListProducts(ctx context.Context) ([]Product, error)
	AddProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	RecordOrder(ctx context.Context, req RecordOrderRequest) (*OrderRecord, error)
	ListOrderRecords(ctx context.Context) ([]OrderRecord, error)
}

// CatalogHandler holds the HTTP handlers of the catalog service.
type CatalogHandler struct {
	useCase CatalogUseCaseInterface
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(useCase CatalogUseCaseInterface) *CatalogHandler {
	return &CatalogHandler{
		useCase: useCase,
	}
}

// ListProducts handles GET /api/catalog/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddProduct handles POST /api/catalog/products.
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.useCase.AddProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RecordOrder handles POST /api/catalog/orders, the sink the sales service
// notifies after an order is persisted.
func (h *CatalogHandler) RecordOrder(c *gin.Context) {
	var req RecordOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.useCase.RecordOrder(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListOrderRecords handles GET /api/catalog/orders.
func (h *CatalogHandler) ListOrderRecords(c *gin.Context) {
	records, err := h.useCase.ListOrderRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// HealthCheck reports service health.
func (h *CatalogHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-service",
	})
}
