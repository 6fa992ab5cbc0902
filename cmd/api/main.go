package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-cafe-api/internal/handler"
	"go-cafe-api/internal/middleware"
	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
	"go-cafe-api/internal/service"
	"go-cafe-api/internal/ws"
	"go-cafe-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Product{}, &model.RecipeItem{}, &model.InventoryItem{},
		&model.Order{}, &model.OrderLine{},
		&model.Notification{}, &model.Supplier{}, &model.DeliveryZone{}, &model.ReportLog{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, admin user, and delivery zones
	seedPrivilegesRolesAndAdmin(db)
	seedDeliveryZones(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	notifRepo := repository.NewNotificationRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	zoneRepo := repository.NewDeliveryZoneRepo(db)
	reportRepo := repository.NewReportLogRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	deliveryService := service.NewDeliveryService(zoneRepo)
	orderService := service.NewOrderService(productRepo, inventoryRepo, orderRepo, notifRepo, deliveryService, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, inventoryRepo, wsHub)
	invService := service.NewInventoryService(inventoryRepo, notifRepo, db, wsHub)
	supplierService := service.NewSupplierService(supplierRepo)
	notifService := service.NewNotificationService(notifRepo)
	dashService := service.NewDashboardService(orderRepo, productRepo, inventoryRepo, notifRepo)
	reportService := service.NewReportService(orderRepo, inventoryRepo, reportRepo)
	reorderService := service.NewReorderService(inventoryRepo, notifRepo)
	authService := service.NewAuthService(userRepo, roleRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	invHandler := handler.NewInventoryHandler(invService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	notifHandler := handler.NewNotificationHandler(notifService)
	zoneHandler := handler.NewDeliveryZoneHandler(deliveryService)
	dashHandler := handler.NewDashboardHandler(dashService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Background auto-reorder sweep
	reorderCtx, stopReorder := context.WithCancel(context.Background())
	go reorderService.Run(reorderCtx, reorderInterval())

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Cafe Ordering API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// Public menu browsing and delivery fee preview
	api.Get("/menu", catalogHandler.GetMenu)
	api.Get("/delivery-zones/quote", zoneHandler.QuoteFee)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Order Routes
	protected.Post("/orders", middleware.RequirePrivilege("order:create"), orderHandler.PlaceOrder)
	protected.Get("/orders/staff", middleware.RequirePrivilege("order:view"), orderHandler.GetStaffOrders)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)
	protected.Put("/orders/:id/status", middleware.RequirePrivilege("order:update_status"), orderHandler.UpdateStatus)
	protected.Post("/orders/:id/print", middleware.RequirePrivilege("order:view"), orderHandler.PrintReceipt)
	protected.Get("/customer/orders", orderHandler.GetCustomerOrders)

	// Menu Management Routes
	protected.Get("/products", middleware.RequirePrivilege("menu:view"), catalogHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege("menu:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("menu:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("menu:delete"), catalogHandler.DeleteProduct)
	protected.Get("/products/:id/ingredients", middleware.RequirePrivilege("menu:view"), catalogHandler.GetIngredients)
	protected.Put("/products/:id/ingredients", middleware.RequirePrivilege("menu:update"), catalogHandler.UpdateIngredients)

	// Inventory Routes
	protected.Get("/inventory", middleware.RequirePrivilege("inventory:view"), invHandler.GetItems)
	protected.Get("/inventory/low-stock", middleware.RequirePrivilege("inventory:view"), invHandler.GetLowStock)
	protected.Post("/inventory/low-stock-alert", middleware.RequirePrivilege("inventory:view"), invHandler.SendLowStockAlert)
	protected.Get("/inventory/:id", middleware.RequirePrivilege("inventory:view"), invHandler.GetItem)
	protected.Post("/inventory", middleware.RequirePrivilege("inventory:create"), invHandler.CreateItem)
	protected.Put("/inventory/:id", middleware.RequirePrivilege("inventory:update"), invHandler.UpdateItem)

	// Supplier Routes
	protected.Get("/suppliers", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequirePrivilege("supplier:create"), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePrivilege("supplier:update"), supplierHandler.UpdateSupplier)

	// Notification Routes
	protected.Get("/notifications", middleware.RequirePrivilege("notification:view"), notifHandler.GetNotifications)
	protected.Get("/notifications/unread", middleware.RequirePrivilege("notification:view"), notifHandler.GetUnread)
	protected.Put("/notifications/:id/read", middleware.RequirePrivilege("notification:view"), notifHandler.MarkRead)
	protected.Get("/customer/notifications", notifHandler.GetCustomerNotifications)

	// Delivery Zone Routes (admin management)
	protected.Get("/delivery-zones", middleware.RequirePrivilege("menu:view"), zoneHandler.GetZones)
	protected.Post("/delivery-zones", middleware.RequirePrivilege("menu:create"), zoneHandler.CreateZone)
	protected.Put("/delivery-zones/:id", middleware.RequirePrivilege("menu:update"), zoneHandler.UpdateZone)
	protected.Delete("/delivery-zones/:id", middleware.RequirePrivilege("menu:delete"), zoneHandler.DeleteZone)

	// Dashboard Routes
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)

	// Report Routes
	protected.Get("/reports/sales", middleware.RequirePrivilege("report:view"), reportHandler.GetSalesReport)
	protected.Get("/reports/inventory", middleware.RequirePrivilege("report:view"), reportHandler.GetInventoryReport)
	protected.Get("/reports/history", middleware.RequirePrivilege("report:view"), reportHandler.GetHistory)

	// User Management Routes (with privilege checks)
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopReorder()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// reorderInterval reads REORDER_INTERVAL (e.g. "2m", "30s"), defaulting
// to two minutes.
func reorderInterval() time.Duration {
	raw := os.Getenv("REORDER_INTERVAL")
	if raw == "" {
		return 2 * time.Minute
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		log.Printf("Warning: invalid REORDER_INTERVAL %q, using 2m", raw)
		return 2 * time.Minute
	}
	return interval
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ ADMIN role assigned all privileges")
	}

	// STAFF handles the counter and the kitchen queue
	staffRole, err := roleRepo.FindByCode(model.RoleStaff)
	if err == nil && len(staffRole.Privileges) == 0 {
		db.Model(&staffRole).Association("Privileges").Replace(pickPrivileges(allPrivileges, model.StaffPrivilegeCodes))
		log.Println("✅ STAFF role assigned counter privileges")
	}

	// CUSTOMER browses and orders
	customerRole, err := roleRepo.FindByCode(model.RoleCustomer)
	if err == nil && len(customerRole.Privileges) == 0 {
		db.Model(&customerRole).Association("Privileges").Replace(pickPrivileges(allPrivileges, model.CustomerPrivilegeCodes))
		log.Println("✅ CUSTOMER role assigned ordering privileges")
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@cafe.local")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       "admin@cafe.local",
			FullName:    "Cafe Administrator",
			PhoneNumber: "",
			RoleID:      &adminRole.ID,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@cafe.local / admin123 (ADMIN)")
		}
	}
}

func pickPrivileges(all []model.Privilege, codes []string) []model.Privilege {
	wanted := map[string]bool{}
	for _, code := range codes {
		wanted[code] = true
	}
	picked := []model.Privilege{}
	for _, p := range all {
		if wanted[p.Code] {
			picked = append(picked, p)
		}
	}
	return picked
}

// seedDeliveryZones creates the initial coverage map if the table is empty
func seedDeliveryZones(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.DeliveryZone{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	zones := []model.DeliveryZone{
		{CityOrArea: "Quezon City", Fee: 50.00, IsActive: true},
		{CityOrArea: "Makati", Fee: 60.00, IsActive: true},
		{CityOrArea: "Manila", Fee: 55.00, IsActive: true},
		{CityOrArea: "Pasig", Fee: 60.00, IsActive: true},
		{CityOrArea: "Taguig", Fee: 65.00, IsActive: true},
	}
	for i := range zones {
		zones[i].CreatedBy = "system"
		zones[i].UpdatedBy = "system"
	}

	if err := db.Create(&zones).Error; err != nil {
		log.Printf("Warning: Failed to seed delivery zones: %v", err)
	} else {
		log.Printf("✅ Seeded %d delivery zones", len(zones))
	}
}
