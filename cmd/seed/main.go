package main

import (
	"context"
	"log"

	"bazaar/internal/config"
	"bazaar/internal/db"
	"bazaar/internal/model"
	"bazaar/internal/repository"
	"bazaar/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	seedService := service.NewSeedService(userRepo, categoryRepo, productRepo)

	result, err := seedService.SeedCatalog(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", result.Users)
	log.Printf("  - Categories present: %d", result.Categories)
	log.Printf("  - Products created: %d", result.Products)
}
