package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// SalesUseCase orchestrates the place-order saga across the catalog and
// stock services and the local order ledger.
type SalesUseCase struct {
	ledger  OrderRepository
	catalog CatalogClient
	stock   StockClient
	tracer  trace.Tracer

	ordersPlaced     metric.Int64Counter
	partialSuccesses metric.Int64Counter
}

// NewSalesUseCase creates a new SalesUseCase.
func NewSalesUseCase(
	ledger OrderRepository,
	catalog CatalogClient,
	stock StockClient,
	tracer trace.Tracer,
	meter metric.Meter,
) *SalesUseCase {
	ordersPlaced, err := meter.Int64Counter("sales.orders_placed")
	if err != nil {
		logrus.Warnf("Failed to create orders_placed counter: %v", err)
	}
	partialSuccesses, err := meter.Int64Counter("sales.partial_successes")
	if err != nil {
		logrus.Warnf("Failed to create partial_successes counter: %v", err)
	}

	return &SalesUseCase{
		ledger:           ledger,
		catalog:          catalog,
		stock:            stock,
		tracer:           tracer,
		ordersPlaced:     ordersPlaced,
		partialSuccesses: partialSuccesses,
	}
}

// PlaceOrder runs the saga in strict sequence: locate the product, decrement
// stock, persist the order, notify the catalog, build the invoice line.
//
// The ledger write is the point of no return. Everything before it hard-fails
// with no side effects left behind; the catalog notification after it
// soft-fails into a PartialSuccess result and is never compensated, so a
// downstream outage can cost reporting lag but never a lost order or
// double-sold stock.
func (uc *SalesUseCase) PlaceOrder(ctx context.Context, req PlaceOrderRequest, authorization string) (*PlaceOrderResult, error) {
	if strings.TrimSpace(req.Customer) == "" {
		return nil, fmt.Errorf("%w: customer is required", ErrInvalidRequest)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
	}

	sagaID := uuid.New().String()
	log := logrus.WithFields(logrus.Fields{
		"saga_id":    sagaID,
		"customer":   req.Customer,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	ctx, span := uc.tracer.Start(ctx, "place_order")
	defer span.End()
	span.SetAttributes(
		attribute.String("saga_id", sagaID),
		attribute.Int("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	// 1. Locate the product in the catalog snapshot.
	stepCtx, stepSpan := uc.tracer.Start(ctx, "saga.fetch_product")
	product, err := uc.findProduct(stepCtx, req.ProductID, authorization)
	stepSpan.End()
	if err != nil {
		log.WithError(err).Warn("saga aborted: product lookup failed")
		span.RecordError(err)
		return nil, err
	}

	// 2. Decrement stock. This commits a real-world resource, so it must
	// happen before the order is durably recorded: an unfulfillable order
	// must never reach the ledger.
	stepCtx, stepSpan = uc.tracer.Start(ctx, "saga.decrement_stock")
	remaining, err := uc.stock.Decrement(stepCtx, req.ProductID, req.Quantity, authorization)
	stepSpan.End()
	if err != nil {
		log.WithError(err).Warn("saga aborted: stock decrement refused")
		span.RecordError(err)
		return nil, err
	}

	// 3. Persist the order. Point of no return: once this succeeds the
	// order exists regardless of what follows. If the write itself fails,
	// the decrement from step 2 is NOT compensated; that inconsistency
	// window is accepted and reconciled out of band.
	stepCtx, stepSpan = uc.tracer.Start(ctx, "saga.persist_order")
	order, err := uc.ledger.CreateOrder(stepCtx, NewOrder(req.Customer, req.ProductID, req.Quantity))
	stepSpan.End()
	if err != nil {
		log.WithError(err).Error("order ledger write failed after stock decrement; decrement stands")
		span.RecordError(err)
		return nil, fmt.Errorf("persisting order: %w", err)
	}
	log = log.WithField("order_id", order.ID)

	if uc.ordersPlaced != nil {
		uc.ordersPlaced.Add(ctx, 1)
	}

	result := &PlaceOrderResult{Invoice: NewInvoiceLine(order, product)}

	// 4. Notify the catalog for historical reporting. Soft failure: the
	// order stands, catalog history becomes eventually consistent.
	stepCtx, stepSpan = uc.tracer.Start(ctx, "saga.notify_catalog")
	err = uc.catalog.RecordOrder(stepCtx, order, authorization)
	stepSpan.End()
	if err != nil {
		result.PartialSuccess = true
		result.Warning = fmt.Sprintf("order %d placed but catalog notification failed: %v", order.ID, err)
		log.WithError(err).Warn("catalog notification failed, order stands")
		span.AddEvent("catalog notification failed")
		if uc.partialSuccesses != nil {
			uc.partialSuccesses.Add(ctx, 1)
		}
	}

	log.WithFields(logrus.Fields{
		"total":     result.Invoice.Total,
		"remaining": remaining.QuantityOnHand,
	}).Info("✅ order placed")
	return result, nil
}

// findProduct fetches the catalog and locates the requested product.
func (uc *SalesUseCase) findProduct(ctx context.Context, productID int, authorization string) (Product, error) {
	products, err := uc.catalog.ListProducts(ctx, authorization)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: product %d", ErrProductNotFound, productID)
}

// ListProductsWithStock fetches products and stock concurrently and joins
// them on product id. The two fetches have no ordering dependency, so the
// decorated result is the same whichever completes first.
func (uc *SalesUseCase) ListProductsWithStock(ctx context.Context, authorization string) ([]StockedProduct, error) {
	ctx, span := uc.tracer.Start(ctx, "list_products_with_stock")
	defer span.End()

	var (
		products []Product
		stocks   []StockRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.catalog.ListProducts(gctx, authorization)
		return err
	})
	g.Go(func() error {
		var err error
		stocks, err = uc.stock.ListStock(gctx, authorization)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return decorateWithStock(products, stocks), nil
}

// ListOrders returns the local order ledger.
func (uc *SalesUseCase) ListOrders(ctx context.Context) ([]Order, error) {
	return uc.ledger.ListOrders(ctx)
}

// decorateWithStock joins the two snapshots on product id. Merge rules:
// quantities for a product listed more than once in stock are summed, a
// product with no stock record defaults to zero, and stock for a product
// absent from the catalog is ignored.
func decorateWithStock(products []Product, stocks []StockRecord) []StockedProduct {
	onHand := make(map[int]int, len(stocks))
	for _, s := range stocks {
		onHand[s.ProductID] += s.QuantityOnHand
	}

	out := make([]StockedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, StockedProduct{Product: p, QuantityAvailable: onHand[p.ID]})
	}
	return out
}
