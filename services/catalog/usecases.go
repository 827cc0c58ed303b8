package main

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CatalogUseCase holds the business logic of the catalog service.
type CatalogUseCase struct {
	repository CatalogRepository
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(repository CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{
		repository: repository,
	}
}

// ListProducts returns every product in the catalog.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]Product, error) {
	return uc.repository.ListProducts(ctx)
}

// AddProduct registers a new product.
func (uc *CatalogUseCase) AddProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	p, err := uc.repository.CreateProduct(ctx, req.Name, req.Description, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": p.ID,
		"name":       p.Name,
		"unit_price": p.UnitPrice,
	}).Info("product created")
	return p, nil
}

// RecordOrder appends an order to the catalog-side history. A missing
// placedOn defaults to today.
func (uc *CatalogUseCase) RecordOrder(ctx context.Context, req RecordOrderRequest) (*OrderRecord, error) {
	placedOn := req.PlacedOn
	if placedOn.IsZero() {
		placedOn = Today()
	}

	rec, err := uc.repository.RecordOrder(ctx, OrderRecord{
		OrderID:   req.OrderID,
		Customer:  req.Customer,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		PlacedOn:  placedOn,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   rec.OrderID,
		"customer":   rec.Customer,
		"product_id": rec.ProductID,
	}).Info("order recorded in catalog history")
	return rec, nil
}

// ListOrderRecords returns the full order history.
func (uc *CatalogUseCase) ListOrderRecords(ctx context.Context) ([]OrderRecord, error) {
	return uc.repository.ListOrderRecords(ctx)
}
