package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/config"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/handler"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product  *handler.ProductHandler
	Context  *handler.ContextHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Sale     *handler.SaleHandler
	Drawer   *handler.DrawerHandler
	Loyalty  *handler.LoyaltyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.Use(middleware.OperatorMiddleware())

		// Per-client rate limiter
		rateCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rateCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			rateCfg.BurstSize = deps.Cfg.RateLimit.Requests
			rateCfg.CleanupInterval = 5 * time.Minute
			rateCfg.EntryTTL = 10 * time.Minute
		}
		v1.Use(middleware.NewClientRateLimiter(rateCfg).Middleware())

		supervisor := middleware.SupervisorMiddleware(deps.Cfg.Store.SupervisorPasswordHash)

		registerProductRoutes(v1, h)
		registerContextRoutes(v1, h)
		registerSaleRoutes(v1, h, supervisor)
		registerDrawerRoutes(v1, h, supervisor)

		v1.GET("/loyalty/:cpf", h.Loyalty.Balance)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/code/:code", h.Product.GetByCode)
	}
}

func registerContextRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/contexts", h.Context.List)

	ctx := v1.Group("/contexts/:context")
	{
		ctx.GET("", h.Context.Get)
		ctx.DELETE("", h.Context.Clear)
		ctx.PUT("/party-size", h.Context.SetPartySize)
		ctx.PUT("/reviewed", h.Context.SetReviewed)

		ctx.POST("/items", h.Cart.AddItem)
		ctx.POST("/items/:product_id/decrement", h.Cart.DecrementItem)
		ctx.DELETE("/items/:product_id", h.Cart.RemoveItem)
		ctx.PUT("/items/:product_id/observation", h.Cart.SetObservation)

		ctx.PUT("/discount", h.Cart.SetDiscount)
		ctx.DELETE("/discount", h.Cart.ClearDiscount)
		ctx.PUT("/tax", h.Cart.SetTax)
		ctx.PUT("/service-fee", h.Cart.SetServiceFee)

		ctx.POST("/send", h.Cart.SendToKitchen)
		ctx.POST("/finalize", h.Checkout.Finalize)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, supervisor gin.HandlerFunc) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/daily-total", h.Sale.DailyTotal)
		sales.GET("/:cupom", h.Sale.Get)
		sales.GET("/:cupom/receipt", h.Sale.Receipt)
		sales.POST("/:cupom/cancel", supervisor, h.Checkout.Cancel)
	}
}

func registerDrawerRoutes(v1 *gin.RouterGroup, h *Handlers, supervisor gin.HandlerFunc) {
	drawer := v1.Group("/drawer")
	{
		drawer.POST("/open", h.Drawer.Open)
		drawer.GET("/current", h.Drawer.Current)
		drawer.POST("/movements", h.Drawer.Movement)
		drawer.POST("/close", supervisor, h.Drawer.Close)
	}
}
