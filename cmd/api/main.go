package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/config"
	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Barcode{},
		&model.Transaction{}, &model.TransactionItem{}, &model.StockLog{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Cache (optional; Noop when Redis is not configured)
	var appCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(context.Background()); err != nil {
			zapLogger.Warn("redis unreachable, caching disabled", zap.Error(err))
		} else {
			appCache = redisCache
			defer redisCache.Close()
		}
	}
	cacheTTL := time.Duration(cfg.CacheTTLSecs) * time.Second

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	barcodeRepo := repository.NewBarcodeRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	txManager := repository.NewTxManager(db)

	checkoutService := service.NewCheckoutService(productRepo, txRepo, stockLogRepo, txManager, appCache, wsHub, zapLogger)
	productService := service.NewProductService(productRepo, barcodeRepo, categoryRepo, stockLogRepo, txManager, appCache, cacheTTL, wsHub, zapLogger)
	barcodeService := service.NewBarcodeService(barcodeRepo, txManager)
	reportService := service.NewReportService(txRepo)
	dashService := service.NewDashboardService(txRepo, appCache, cacheTTL, zapLogger)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	txHandler := handler.NewTransactionHandler(checkoutService)
	productHandler := handler.NewProductHandler(productService)
	barcodeHandler := handler.NewBarcodeHandler(barcodeService)
	reportHandler := handler.NewReportHandler(reportService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)
	protected.Get("/dashboard/sales-chart", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetSalesChart)

	// Products and categories
	protected.Get("/products", middleware.RequirePrivilege("product:view"), productHandler.GetProducts)
	protected.Get("/products/barcode/:code", middleware.RequirePrivilege("product:view"), productHandler.GetProductByBarcode)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), productHandler.GetProduct)
	protected.Get("/products/:id/stock-logs", middleware.RequirePrivilege("product:view"), productHandler.GetStockLogs)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Post("/products/:id/restock", middleware.RequirePrivilege("product:restock"), productHandler.Restock)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)
	protected.Get("/categories", middleware.RequirePrivilege("product:view"), productHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege("product:create"), productHandler.CreateCategory)

	// Barcode pool
	protected.Get("/barcodes/stats", middleware.RequireAnyPrivilege("barcode:view", "barcode:generate"), barcodeHandler.GetBarcodeStats)
	protected.Post("/barcodes/generate", middleware.RequirePrivilege("barcode:generate"), barcodeHandler.GenerateBarcodes)

	// Checkout / transactions
	protected.Get("/transactions", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransaction)
	protected.Post("/transactions", middleware.RequirePrivilege("transaction:create"), txHandler.Checkout)

	// Reports
	protected.Get("/reports/sales", middleware.RequirePrivilege("report:view"), reportHandler.GetSalesReport)
	protected.Get("/reports/sales/export", middleware.RequirePrivilege("report:export"), reportHandler.ExportSales)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles and privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	ctx := context.Background()
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll(ctx)

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(ctx, model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// ADMIN gets everything except user management
	adminRole, err := roleRepo.FindByCode(ctx, model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:create" && p.Code != "user:update" && p.Code != "user:delete" && p.Code != "user:update_privilege" {
				adminPrivileges = append(adminPrivileges, p)
			}
		}
		db.Model(&adminRole).Association("Privileges").Replace(adminPrivileges)
		log.Println("ADMIN role assigned limited privileges")
	}

	// CASHIER gets the sell-side subset
	cashierRole, err := roleRepo.FindByCode(ctx, model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, err := privilegeRepo.FindByCodes(ctx, model.CashierPrivilegeCodes)
		if err == nil {
			db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
			log.Println("CASHIER role assigned checkout privileges")
		}
	}

	// 4. Create default admin user with MASTER_ADMIN role
	_, err = userRepo.FindByEmail(ctx, "admin@example.com")
	if err != nil {
		masterRole, _ := roleRepo.FindByCode(ctx, model.RoleMasterAdmin)

		admin := &model.User{
			Email:       "admin@example.com",
			FullName:    "Master Administrator",
			PhoneNumber: "",
			RoleID:      &masterRole.ID,
			IsActive:    true,
			Privileges:  masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(ctx, admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}
