package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/config"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/infrastructure/database"
	"github.com/tk-rocha/garcom-api/internal/infrastructure/kitchen"
	"github.com/tk-rocha/garcom-api/internal/infrastructure/repository"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/handler"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/routes"
	"github.com/tk-rocha/garcom-api/pkg/money"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	saleRepo := repository.NewSaleRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	contextRepo := repository.NewContextStateRepository(db)
	productRepo := repository.NewProductRepository(db)
	drawerRepo := repository.NewDrawerRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)

	// Restore open order contexts from the durable store
	registry := service.NewRegistryService(contextRepo, money.FromFloat(cfg.Store.TableServiceFeePct))
	if err := registry.Load(context.Background()); err != nil {
		log.Fatalf("Failed to restore order contexts: %v", err)
	}

	// Kitchen ticket publisher: RabbitMQ when configured, no-op otherwise
	var kitchenNotifier service.KitchenNotifier = service.NoopKitchenNotifier{}
	if cfg.RabbitMQ.Enabled {
		notifier, err := kitchen.Dial(kitchen.Config{
			Host:     cfg.RabbitMQ.Host,
			Port:     cfg.RabbitMQ.Port,
			User:     cfg.RabbitMQ.User,
			Password: cfg.RabbitMQ.Password,
			VHost:    cfg.RabbitMQ.VHost,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer notifier.Close()
		kitchenNotifier = notifier
	}

	// Initialize services
	cartService := service.NewCartService(registry, kitchenNotifier)
	catalogService := service.NewCatalogService(productRepo)
	ledgerService := service.NewLedgerService(saleRepo, ledgerRepo)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)
	drawerService := service.NewDrawerService(drawerRepo)
	checkoutService := service.NewCheckoutService(registry, saleRepo, ledgerService, loyaltyService, drawerService)

	receiptHeader := entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:  handler.NewProductHandler(catalogService),
		Context:  handler.NewContextHandler(registry),
		Cart:     handler.NewCartHandler(cartService, catalogService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Sale:     handler.NewSaleHandler(checkoutService, ledgerService, receiptHeader),
		Drawer:   handler.NewDrawerHandler(drawerService),
		Loyalty:  handler.NewLoyaltyHandler(loyaltyService),
	}

	// Setup router and start server
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
