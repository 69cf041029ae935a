package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"apartment-be-svc/docs"
	"apartment-be-svc/internal/config"
	"apartment-be-svc/internal/database"
	"apartment-be-svc/internal/handler"
	"apartment-be-svc/internal/middleware"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/internal/scheduler"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
)

// @title Apartment Fee Portal API
// @version 1.0
// @description RESTful API for apartment households, monthly fee invoices and resident payments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Apartment Fee Portal API"
	docs.SwaggerInfo.Description = "RESTful API for apartment households, monthly fee invoices and resident payments"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Apartment Fee Portal Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize Redis for refresh tokens
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		appLogger.WithField("error", err).Fatal("Failed to connect to redis")
	}
	pingCancel()
	appLogger.Info("Redis connected successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	tokenRepo := repository.NewTokenRepository(redisClient)
	householdRepo := repository.NewHouseholdRepository(db.DB)
	invoiceRepo := repository.NewInvoiceRepository(db.DB)
	feeRepo := repository.NewFeeRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	registrationRepo := repository.NewRegistrationRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWT, appLogger)
	householdService := service.NewHouseholdService(householdRepo, appLogger)
	invoiceService := service.NewInvoiceService(invoiceRepo, householdRepo, feeRepo, cfg.Scheduler.DueDay, appLogger)
	feeService := service.NewFeeService(feeRepo, appLogger)
	dashboardService := service.NewDashboardService(householdRepo, invoiceRepo, registrationRepo, paymentRepo, appLogger)
	registrationService := service.NewRegistrationService(registrationRepo, householdRepo, appLogger)

	// Initialize scheduler
	var invoiceScheduler *scheduler.InvoiceScheduler
	if cfg.Scheduler.Enabled {
		invoiceScheduler = scheduler.NewInvoiceScheduler(invoiceService, schedulerLogRepo, appLogger, cfg.Scheduler.InvoiceCronExpression)
		if err := invoiceScheduler.Start(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to start invoice scheduler")
		}
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOriginList()))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())
	router.HandleMethodNotAllowed = true

	// Setup routes
	handler.SetupRoutes(router, handler.Services{
		Auth:         authService,
		Household:    householdService,
		Invoice:      invoiceService,
		Fee:          feeService,
		Dashboard:    dashboardService,
		Registration: registrationService,
	}, cfg, appLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	if invoiceScheduler != nil {
		invoiceScheduler.Stop()
	}

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close connections
	if err := redisClient.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close redis connection")
	}
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
