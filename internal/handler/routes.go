package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/config"
	"apartment-be-svc/internal/middleware"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
)

// Services groups the business services exposed over HTTP
type Services struct {
	Auth         service.AuthService
	Household    service.HouseholdService
	Invoice      service.InvoiceService
	Fee          service.FeeService
	Dashboard    service.DashboardService
	Registration service.RegistrationService
}

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, services Services, cfg *config.Config, logger *logger.Logger) {
	// Initialize handlers
	authHandler := NewAuthHandler(services.Auth, cfg.JWT, logger)
	householdHandler := NewHouseholdHandler(services.Household, logger)
	invoiceHandler := NewInvoiceHandler(services.Invoice, logger)
	feeHandler := NewFeeHandler(services.Fee, logger)
	dashboardHandler := NewDashboardHandler(services.Dashboard, logger)
	registrationHandler := NewRegistrationHandler(services.Registration, logger)

	requireAuth := middleware.Auth(services.Auth)
	adminOnly := middleware.RequireRole(billing.RoleAdmin)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, logger), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// Household routes
		households := v1.Group("/households", requireAuth)
		{
			households.GET("", adminOnly, householdHandler.ListHouseholds)
			households.GET("/:id", householdHandler.GetHousehold)
		}

		// Invoice routes
		invoices := v1.Group("/invoices", requireAuth)
		{
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.GET("/export", adminOnly, invoiceHandler.ExportInvoices)
			invoices.POST("/generate", adminOnly, invoiceHandler.GenerateInvoices)
			invoices.POST("/settle-batch", invoiceHandler.SettleBatch)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.POST("/:id/settle", invoiceHandler.SettleInvoice)
		}

		// Fee definition routes
		fees := v1.Group("/fees", requireAuth)
		{
			fees.GET("", feeHandler.ListFees)
			fees.GET("/:id", feeHandler.GetFee)
			fees.POST("", adminOnly, feeHandler.CreateFee)
			fees.PUT("/:id", adminOnly, feeHandler.UpdateFee)
			fees.DELETE("/:id", adminOnly, feeHandler.DeleteFee)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard", requireAuth)
		{
			dashboard.GET("/admin", adminOnly, dashboardHandler.GetAdminDashboard)
			dashboard.GET("/resident", middleware.RequireRole(billing.RoleResident), dashboardHandler.GetResidentDashboard)
		}

		// Temporary residence and absence routes
		registrations := v1.Group("/registrations", requireAuth)
		{
			registrations.GET("", registrationHandler.ListRegistrations)
			registrations.POST("", registrationHandler.CreateRegistration)
			registrations.GET("/:id", registrationHandler.GetRegistration)
			registrations.PUT("/:id", registrationHandler.UpdateRegistration)
			registrations.PUT("/:id/approval", adminOnly, registrationHandler.ReviewRegistration)
			registrations.DELETE("/:id", registrationHandler.DeleteRegistration)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Apartment Fee Portal Service",
	})
}
