package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	nlsql "github.com/samuelhany-cpu/NL-TO-SQL"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := openDatabase()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	service, err := nlsql.NewServiceWithConfig(db, nlsql.ServiceConfig{
		Logger:        logger,
		Observability: []observability.Option{observability.WithServerTiming()},
	})
	if err != nil {
		log.Fatal("Failed to create service:", err)
	}

	if err := service.Initialize(context.Background()); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	fmt.Println("Stock query server starting...")
	fmt.Println("Service endpoints:")
	fmt.Println("  Health:       http://localhost:8080/health")
	fmt.Println("  Parse:        POST http://localhost:8080/parse  (body: {\"query\": \"show all products\"})")
	fmt.Println("  Products:     http://localhost:8080/products")
	fmt.Println("  Categories:   http://localhost:8080/products/categories")
	fmt.Println("  Search:       http://localhost:8080/products/search?q=laptop")
	fmt.Println("  Stats:        http://localhost:8080/stats")
	fmt.Println("  Vocabulary:   http://localhost:8080/vocabulary")
	fmt.Println()

	if err := service.ListenAndServe(":8080"); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// openDatabase connects to postgres when NLSQL_DSN is set, otherwise to an
// in-memory sqlite database.
func openDatabase() (*gorm.DB, error) {
	if dsn := os.Getenv("NLSQL_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
}
