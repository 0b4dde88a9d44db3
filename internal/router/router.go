// Package router assembles the HTTP API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finboard/internal/docs" // Register swagger docs
	"finboard/internal/handlers"
	"finboard/internal/middleware"
	"finboard/internal/services"
)

// Services are the dependencies the routes are served by.
type Services struct {
	Session      services.SessionServicer
	Transactions services.TransactionServicer
	Export       services.ExportServicer
	Budgets      services.BudgetServicer
	Dashboard    services.DashboardServicer
	Audit        services.AuditServicer
}

// NewServices wires every service over one registry of per-user state.
func NewServices(session services.SessionServicer, registry *services.Registry, openingBalance float64) Services {
	return Services{
		Session:      session,
		Transactions: services.NewTransactionService(registry),
		Export:       services.NewExportService(registry),
		Budgets:      services.NewBudgetService(registry),
		Dashboard:    services.NewDashboardService(registry, openingBalance),
		Audit:        services.NewAuditService(),
	}
}

// New builds the gin engine with every route registered.
func New(svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Session, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Export, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.LoginWithGoogle)
	auth.GET("/session", authHandler.GetSession)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Session))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/categories", transactionHandler.GetCategories)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.POST("/sort/:field", transactionHandler.ToggleSort)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/click", transactionHandler.ClickTransaction)

	// Bulk selection routes
	selection := transactions.Group("/selection")
	selection.POST("/mode", transactionHandler.ToggleBulkMode)
	selection.POST("/all", transactionHandler.SelectAll)
	selection.POST("/delete", transactionHandler.DeleteSelected)
	selection.POST("/:id", transactionHandler.ToggleSelected)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/summary", budgetHandler.GetBudgetSummary)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.PUT("/:id/spent", budgetHandler.RecordSpending)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/weekly", dashboardHandler.GetWeeklyActivity)
	dashboard.GET("/breakdown", dashboardHandler.GetExpenseBreakdown)

	return router
}
