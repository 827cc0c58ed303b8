// Command migrate creates the three service databases if they are missing
// and applies each service's schema migrations.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var databases = []string{"sales_db", "catalog_db", "stock_db"}

func main() {
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded configuration from .env")
	}

	if err := run(); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
	logrus.Info("✅ All migrations applied")
}

func run() error {
	user := getEnv("DATABASE_USER", "root")
	password := getEnv("DATABASE_PASSWORD", "pass")
	host := getEnv("DATABASE_HOST", "localhost")
	port := getEnv("DATABASE_PORT", "5432")

	adminURL := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	db, err := sql.Open("postgres", adminURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	for _, name := range databases {
		if _, err := db.Exec("CREATE DATABASE " + name); err != nil {
			if !isAlreadyExists(err) {
				return fmt.Errorf("failed to create database %s: %w", name, err)
			}
			logrus.Infof("Database %s already exists, skipping creation", name)
		} else {
			logrus.Infof("Database %s created", name)
		}
	}

	for _, svc := range []struct{ dir, database string }{
		{"sales", "sales_db"},
		{"catalog", "catalog_db"},
		{"stock", "stock_db"},
	} {
		dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, svc.database)
		m, err := migrate.New("file://migrations/"+svc.dir, dbURL)
		if err != nil {
			return fmt.Errorf("failed to open migrations for %s: %w", svc.dir, err)
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to migrate %s: %w", svc.dir, err)
		}
		logrus.Infof("Migrated %s", svc.database)
	}
	return nil
}

func isAlreadyExists(err error) bool {
	return strings.Contains(err.Error(), "already exists")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
