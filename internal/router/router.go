package router

import (
	"time"

	"storepos/internal/config"
	"storepos/internal/handler"
	"storepos/internal/middleware"
	"storepos/internal/repository"
	"storepos/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(productRepo)
	salesSvc := service.NewSalesService(saleRepo, productRepo)
	reportSvc := service.NewReportService(productRepo, saleRepo, cfg.ExportDir)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(inventorySvc)
	salesH := handler.NewSalesHandler(salesSvc, cfg.ExportDir)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog and selling — any authenticated role
		v1.GET("/products", middleware.RequireRole("admin", "user"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("admin", "user"), productsH.GetByID)
		v1.POST("/sales", middleware.RequireRole("admin", "user"), salesH.Record)
		v1.GET("/sales", middleware.RequireRole("admin", "user"), salesH.List)
		v1.GET("/sales/:id/receipt", middleware.RequireRole("admin", "user"), salesH.Receipt)

		// Catalog writes and stock adjustment — admin only
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
		}

		reports := v1.Group("/reports", middleware.RequireRole("admin", "user"))
		{
			reports.GET("/low-stock", reportsH.LowStock)
			reports.GET("/sales-summary", reportsH.SalesSummary)
			reports.POST("/export/inventory", reportsH.ExportInventory)
			reports.POST("/export/sales", reportsH.ExportSales)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PATCH("/:id/password", usersH.ChangePassword)
			users.DELETE("/:id", usersH.Delete)
		}
	}

	return r
}
