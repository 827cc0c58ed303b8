package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// CatalogClient wraps the remote calls against the catalog service. The
// caller's bearer credential, when present, is forwarded unchanged.
type CatalogClient interface {
	ListProducts(ctx context.Context, authorization string) ([]Product, error)

	// RecordOrder informs the catalog of an already-persisted order for
	// historical reporting. A failure here never rolls the order back.
	RecordOrder(ctx context.Context, order *Order, authorization string) error
}

// StockClient wraps the remote calls against the stock service.
type StockClient interface {
	ListStock(ctx context.Context, authorization string) ([]StockRecord, error)

	// Decrement asks the stock service to atomically subtract quantity from
	// the product's stock. It is a single request, never a read followed by
	// a write across the network.
	Decrement(ctx context.Context, productID, quantity int, authorization string) (*StockRecord, error)
}

// HTTPCatalogClient implements CatalogClient over HTTP.
type HTTPCatalogClient struct {
	client *resty.Client
}

// NewCatalogClient creates a catalog client with a bounded per-request timeout.
func NewCatalogClient(baseURL string, timeout time.Duration) *HTTPCatalogClient {
	return &HTTPCatalogClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// ListProducts fetches the full product catalog.
func (c *HTTPCatalogClient) ListProducts(ctx context.Context, authorization string) ([]Product, error) {
	resp, err := withAuth(c.client.R().SetContext(ctx), authorization).
		Get("/api/catalog/products")
	if err != nil {
		return nil, fmt.Errorf("%w: listing catalog products: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: catalog returned %s", ErrUpstreamRejected, resp.Status())
	}

	var products []Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog products: %v", ErrUpstreamMalformed, err)
	}
	return products, nil
}

// RecordOrder posts the persisted order to the catalog's history sink.
func (c *HTTPCatalogClient) RecordOrder(ctx context.Context, order *Order, authorization string) error {
	resp, err := withAuth(c.client.R().SetContext(ctx), authorization).
		SetBody(order).
		Post("/api/catalog/orders")
	if err != nil {
		return fmt.Errorf("%w: recording order in catalog: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: catalog returned %s", ErrUpstreamRejected, resp.Status())
	}
	return nil
}

// HTTPStockClient implements StockClient over HTTP.
type HTTPStockClient struct {
	client *resty.Client
}

// NewStockClient creates a stock client with a bounded per-request timeout.
func NewStockClient(baseURL string, timeout time.Duration) *HTTPStockClient {
	return &HTTPStockClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// ListStock fetches every stock record.
func (c *HTTPStockClient) ListStock(ctx context.Context, authorization string) ([]StockRecord, error) {
	resp, err := withAuth(c.client.R().SetContext(ctx), authorization).
		Get("/api/stock/products")
	if err != nil {
		return nil, fmt.Errorf("%w: listing stock: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: stock returned %s", ErrUpstreamRejected, resp.Status())
	}

	var records []StockRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("%w: decoding stock records: %v", ErrUpstreamMalformed, err)
	}
	return records, nil
}

// Decrement requests the conditional decrement and translates the stock
// service's status codes back into the failure taxonomy.
func (c *HTTPStockClient) Decrement(ctx context.Context, productID, quantity int, authorization string) (*StockRecord, error) {
	resp, err := withAuth(c.client.R().SetContext(ctx), authorization).
		SetBody(map[string]int{"productId": productID, "quantity": quantity}).
		Post("/api/stock/decrement")
	if err != nil {
		return nil, fmt.Errorf("%w: decrementing stock: %v", ErrUpstreamUnavailable, err)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: no stock record for product %d", ErrProductNotFound, productID)
	case resp.StatusCode() == http.StatusConflict:
		return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
	case resp.IsError():
		return nil, fmt.Errorf("%w: stock returned %s", ErrUpstreamRejected, resp.Status())
	}

	var rec StockRecord
	if err := json.Unmarshal(resp.Body(), &rec); err != nil {
		return nil, fmt.Errorf("%w: decoding stock record: %v", ErrUpstreamMalformed, err)
	}
	return &rec, nil
}

func withAuth(req *resty.Request, authorization string) *resty.Request {
	if authorization != "" {
		req.SetHeader("Authorization", authorization)
	}
	return req
}
