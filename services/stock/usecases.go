package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StockUseCase holds the business logic of the inventory service.
type StockUseCase struct {
	repository StockRepository
	tracer     trace.Tracer
}

// NewStockUseCase creates a new StockUseCase.
func NewStockUseCase(repository StockRepository, tracer trace.Tracer) *StockUseCase {
	return &StockUseCase{
		repository: repository,
		tracer:     tracer,
	}
}

// ListStock returns every stock record.
func (uc *StockUseCase) ListStock(ctx context.Context) ([]StockRecord, error) {
	return uc.repository.ListStock(ctx)
}

// AddStock registers a new stock record for a product.
func (uc *StockUseCase) AddStock(ctx context.Context, req CreateStockRequest) (*StockRecord, error) {
	rec, err := uc.repository.CreateStock(ctx, req.ProductID, req.QuantityOnHand)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stock_id":   rec.ID,
		"product_id": rec.ProductID,
		"quantity":   rec.QuantityOnHand,
	}).Info("stock record created")
	return rec, nil
}

// Decrement subtracts quantity from the named product's stock. The
// read-modify-write happens entirely inside the repository, never as a
// separate read followed by a separate write.
func (uc *StockUseCase) Decrement(ctx context.Context, req DecrementRequest) (*StockRecord, error) {
	ctx, span := uc.tracer.Start(ctx, "stock.decrement")
	defer span.End()
	span.SetAttributes(
		attribute.Int("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	rec, err := uc.repository.Decrement(ctx, req.ProductID, req.Quantity)
	if err != nil {
		if !errors.Is(err, ErrStockNotFound) && !errors.Is(err, ErrInsufficientStock) {
			span.RecordError(err)
		}
		logrus.WithFields(logrus.Fields{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		}).WithError(err).Warn("stock decrement refused")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": rec.ProductID,
		"quantity":   req.Quantity,
		"remaining":  rec.QuantityOnHand,
	}).Info("stock decremented")
	return rec, nil
}
