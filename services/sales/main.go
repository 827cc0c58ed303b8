package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/asustec/sales-management-go/internal/observability"
	"github.com/asustec/sales-management-go/internal/postgres"
)

func main() {
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded configuration from .env")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()

	shutdown, err := observability.Setup(ctx, getEnv("SERVICE_NAME", "sales-service"))
	if err != nil {
		logrus.Fatalf("Failed to initialize observability: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logrus.Errorf("Error shutting down observability: %v", err)
		}
	}()

	var ledger OrderRepository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := postgres.Connect(ctx, dsn)
		if err != nil {
			logrus.Fatalf("Failed to initialize database: %v", err)
		}
		defer pool.Close()
		ledger = NewPostgresOrderRepository(pool)
	} else {
		logrus.Warn("DATABASE_URL not set, using in-memory order ledger")
		ledger = NewMemoryOrderRepository()
	}

	timeout := upstreamTimeout()
	catalog := NewCatalogClient(getEnv("CATALOG_SERVICE_URL", "http://localhost:8081"), timeout)
	stock := NewStockClient(getEnv("STOCK_SERVICE_URL", "http://localhost:8082"), timeout)

	tracer := otel.Tracer("sales-service")
	meter := otel.Meter("sales-service")
	useCase := NewSalesUseCase(ledger, catalog, stock, tracer, meter)
	handler := NewSalesHandler(useCase)

	r := gin.Default()
	r.Use(otelgin.Middleware(getEnv("SERVICE_NAME", "sales-service")))

	r.GET("/health", handler.HealthCheck)

	api := r.Group("/api/sales")
	api.GET("/products", handler.ListProducts)
	api.POST("/orders", handler.PlaceOrder)
	api.GET("/orders", handler.ListOrders)

	port := getEnv("PORT", "8080")
	logrus.Infof("🚀 Sales Service listening on port %s", port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func upstreamTimeout() time.Duration {
	ms, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_MS", "5000"))
	if err != nil || ms <= 0 {
		ms = 5000
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
