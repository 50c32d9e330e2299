package main

import (
	"context"
	"flag"
	"log"
	"time"

	"storefront/internal/adapter/persistence/repository"
	"storefront/internal/config"
	"storefront/internal/infrastructure/database"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	seedPath := flag.String("seed", "", "optional YAML file with products to upsert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var store productStore
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("sqlite open failed: %v", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatalf("sqlite migrate failed: %v", err)
		}
		log.Printf("[migrate][sqlite] schema up to date path=%s", cfg.SQLitePath)
		store = repository.NewProductGormRepository(db)
	default:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			log.Fatalf("dynamodb connect failed: %v", err)
		}
		names := repository.DynamoTableNames{
			Products:    cfg.Tables.Products,
			Orders:      cfg.Tables.Orders,
			OrderItems:  cfg.Tables.OrderItems,
			Customers:   cfg.Tables.Customers,
			Subscribers: cfg.Tables.Subscribers,
		}
		if err := repository.EnsureDynamoTables(ctx, ddb, names); err != nil {
			log.Fatalf("dynamodb migrate failed: %v", err)
		}
		store = repository.NewProductDynamoRepository(ddb, cfg.Tables.Products)
	}

	if *seedPath == "" {
		return
	}
	products, err := loadSeed(*seedPath)
	if err != nil {
		log.Fatalf("seed load failed: %v", err)
	}
	n, err := seedProducts(ctx, store, products)
	if err != nil {
		log.Fatalf("seed failed after %d products: %v", n, err)
	}
	log.Printf("[migrate][seed] upserted products=%d", n)
}
