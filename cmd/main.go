package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/handler"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/middleware"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/tenant"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/jwtutil"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("mini-sivesoft-backend")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting inventory service...", zap.String("environment", cfg.Server.Env))

	// Tenant registry and connection manager. Connections are opened lazily on
	// the first request for each tenant.
	registry := tenant.NewRegistry(cfg.Tenants)
	manager := tenant.NewManager(registry, &cfg.DB)
	log.Info("Tenant registry loaded", zap.Strings("tenants", registry.All()))

	// JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics()

	// Feature services
	entities := service.NewEntityService(manager)
	warehouses := service.NewWarehouseService(manager)
	users := service.NewUserService(manager, registry, entities)
	products := service.NewProductService(manager)
	sheets := service.NewSheetService(manager, warehouses, users)
	auth := service.NewAuthService(users, jwtUtil)

	// Handlers
	authHandler := handler.NewAuthHandler(auth)
	userHandler := handler.NewUserHandler(users)
	entityHandler := handler.NewEntityHandler(entities)
	warehouseHandler := handler.NewWarehouseHandler(warehouses)
	productHandler := handler.NewProductHandler(products)
	sheetHandler := handler.NewSheetHandler(sheets)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	// API routes - all require authentication and an active tenant
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtUtil))

	// Tenant switching needs the token but not a tenant context
	api.POST("/auth/switch-tenant", authHandler.SwitchTenant)

	scoped := api.Group("", middleware.RequireTenantContext)

	usersGroup := scoped.Group("/users")
	adminOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)
	usersGroup.POST("", userHandler.Create, adminOnly)
	usersGroup.POST("/:id/warehouses", userHandler.AddWarehouses, adminOnly)
	usersGroup.GET("", userHandler.List)
	usersGroup.GET("/:id", userHandler.Get, adminOnly)
	usersGroup.PATCH("/:id", userHandler.Update, adminOnly)
	usersGroup.DELETE("/:id", userHandler.Delete, adminOnly)

	entitiesGroup := scoped.Group("/entities")
	entitiesGroup.POST("", entityHandler.Create)
	entitiesGroup.GET("", entityHandler.List)
	entitiesGroup.GET("/:id", entityHandler.Get)
	entitiesGroup.PATCH("/:id", entityHandler.Update)
	entitiesGroup.DELETE("/:id", entityHandler.Delete)

	warehousesGroup := scoped.Group("/warehouses")
	warehousesGroup.POST("", warehouseHandler.Create)
	warehousesGroup.GET("", warehouseHandler.List)
	warehousesGroup.GET("/by-user", warehouseHandler.ListByUser)
	warehousesGroup.GET("/:id", warehouseHandler.Get)
	warehousesGroup.PATCH("/:id", warehouseHandler.Update)
	warehousesGroup.DELETE("/:id", warehouseHandler.Delete)

	productsGroup := scoped.Group("/products")
	productsGroup.POST("", productHandler.Create)
	productsGroup.GET("", productHandler.List)
	productsGroup.GET("/barcode/:barcode", productHandler.GetByBarcode)
	productsGroup.GET("/:id", productHandler.Get)
	productsGroup.PATCH("/:id", productHandler.Update)
	productsGroup.DELETE("/:id", productHandler.Delete)

	sheetsGroup := scoped.Group("/inventory-sheets")
	sheetsGroup.POST("", sheetHandler.Create)
	sheetsGroup.GET("", sheetHandler.List)
	sheetsGroup.GET("/:id", sheetHandler.Get)
	sheetsGroup.PATCH("/:id", sheetHandler.Update)
	sheetsGroup.DELETE("/:id", sheetHandler.Delete)

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain requests and close tenant connections
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	manager.Shutdown()
	log.Info("Shutdown complete")
}
