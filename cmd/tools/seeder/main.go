package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/slugsera/backend-shop/internal/config"
	"github.com/slugsera/backend-shop/internal/repo"
	"github.com/slugsera/backend-shop/internal/seed"
)

func main() {
	force := flag.Bool("force", false, "replace existing products")
	flag.Parse()

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	svc, err := seed.NewService(seed.ServiceConfig{Products: repo.NewProductRepository(pool)})
	if err != nil {
		log.Fatalf("Failed to build seeder: %v", err)
	}

	result, err := svc.Seed(ctx, *force)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if !result.Seeded {
		log.Printf("Nothing to do: %s", result.Message)
		return
	}
	log.Printf("Seeding completed successfully, inserted %d products", len(result.Inserted))
}
