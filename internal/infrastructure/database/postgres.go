package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/config"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog
		&entity.Product{},

		// Order-taking state
		&entity.ContextState{},

		// Sales
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.FiscalCounter{},
		&entity.DailyLedger{},

		// Cash drawer
		&entity.DrawerSession{},
		&entity.DrawerMovement{},

		// Loyalty
		&entity.LoyaltyAccount{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// SeedDefaultData inserts a small starter catalog when the products table is
// empty, so a fresh install has something to sell.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default catalog...")
	products := []entity.Product{
		{Code: 101, Name: "X-Burger", Price: decimal.RequireFromString("18.90"), Active: true},
		{Code: 102, Name: "X-Salada", Price: decimal.RequireFromString("21.50"), Active: true},
		{Code: 201, Name: "Batata Frita", Price: decimal.RequireFromString("12.00"), Active: true},
		{Code: 301, Name: "Refrigerante Lata", Price: decimal.RequireFromString("6.50"), Active: true},
		{Code: 302, Name: "Suco Natural", Price: decimal.RequireFromString("9.00"), Active: true},
	}
	return db.Create(&products).Error
}
