package main

import (
	"context"
	"net/http"
	"os"
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

	shutdown, err := observability.Setup(ctx, getEnv("SERVICE_NAME", "stock-service"))
	if err != nil {
		logrus.Fatalf("Failed to initialize observability: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logrus.Errorf("Error shutting down observability: %v", err)
		}
	}()

	var repository StockRepository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := postgres.Connect(ctx, dsn)
		if err != nil {
			logrus.Fatalf("Failed to initialize database: %v", err)
		}
		defer pool.Close()
		repository = NewPostgresStockRepository(pool)
	} else {
		logrus.Warn("DATABASE_URL not set, using in-memory stock repository")
		repository = NewMemoryStockRepository()
	}

	tracer := otel.Tracer("stock-service")
	useCase := NewStockUseCase(repository, tracer)
	handler := NewStockHandler(useCase)

	r := gin.Default()
	r.Use(otelgin.Middleware(getEnv("SERVICE_NAME", "stock-service")))

	r.GET("/health", handler.HealthCheck)

	api := r.Group("/api/stock", bearerAuth(os.Getenv("API_TOKEN")))
	api.GET("/products", handler.ListStock)
	api.POST("/products", handler.AddStock)
	api.POST("/decrement", handler.Decrement)

	port := getEnv("PORT", "8082")
	logrus.Infof("🚀 Stock Service listening on port %s", port)

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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
