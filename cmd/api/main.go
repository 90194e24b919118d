package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/leano777/subtracker-api/internal/config"
	"github.com/leano777/subtracker-api/internal/database"
	"github.com/leano777/subtracker-api/internal/handlers"
	"github.com/leano777/subtracker-api/internal/logger"
	"github.com/leano777/subtracker-api/internal/middleware"
	"github.com/leano777/subtracker-api/internal/services"
	"github.com/leano777/subtracker-api/internal/validator"

	_ "github.com/leano777/subtracker-api/internal/docs" // Import swagger docs
)

// @title           SubTracker API
// @version         1.0
// @description     SubTracker is a personal finance API for planning paycheck allocations across budget pods, tracking savings goals, and managing recurring subscriptions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validation tags on Gin's binding engine
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	incomeService := services.NewIncomeService(db)
	podService := services.NewPodService(db)
	allocationService := services.NewAllocationService(db)
	goalService := services.NewGoalService(db)
	subscriptionService := services.NewSubscriptionService(db)
	cardService := services.NewCardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	podHandler := handlers.NewPodHandler(podService, auditService)
	allocationHandler := handlers.NewAllocationHandler(allocationService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, auditService)
	cardHandler := handlers.NewCardHandler(cardService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Income source routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncomeSource)
	incomes.GET("", incomeHandler.GetIncomeSources)
	incomes.GET("/summary", incomeHandler.GetIncomeSummary)
	incomes.GET("/:id", incomeHandler.GetIncomeSource)
	incomes.PUT("/:id", incomeHandler.UpdateIncomeSource)
	incomes.POST("/:id/deactivate", incomeHandler.DeactivateIncomeSource)
	incomes.DELETE("/:id", incomeHandler.DeleteIncomeSource)

	// Budget pod routes
	pods := protected.Group("/pods")
	pods.POST("", podHandler.CreatePod)
	pods.GET("", podHandler.GetPods)
	pods.GET("/summary", podHandler.GetPodSummary)
	pods.GET("/:id", podHandler.GetPod)
	pods.PUT("/:id", podHandler.UpdatePod)
	pods.DELETE("/:id", podHandler.DeletePod)
	pods.POST("/:id/contribute", podHandler.Contribute)
	pods.POST("/:id/withdraw", podHandler.Withdraw)

	// Paycheck allocation routes
	allocations := protected.Group("/allocations")
	allocations.POST("", allocationHandler.CreateAllocation)
	allocations.GET("", allocationHandler.GetAllocations)
	allocations.GET("/:id", allocationHandler.GetAllocation)
	allocations.PUT("/:id/entries", allocationHandler.SetPodAmount)
	allocations.POST("/:id/auto", allocationHandler.AutoAllocate)
	allocations.POST("/:id/process", allocationHandler.ProcessAllocation)
	allocations.DELETE("/:id", allocationHandler.DeleteAllocation)

	// Financial goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contribute", goalHandler.AddContribution)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)

	// Subscription routes
	subscriptions := protected.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.GetSubscriptions)
	subscriptions.GET("/upcoming", subscriptionHandler.GetUpcomingRenewals)
	subscriptions.GET("/costs", subscriptionHandler.GetCostSummary)
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
	subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
	subscriptions.POST("/:id/cancel", subscriptionHandler.Cancel)
	subscriptions.POST("/:id/pause", subscriptionHandler.Pause)
	subscriptions.POST("/:id/resume", subscriptionHandler.Resume)

	// Payment card routes
	cards := protected.Group("/cards")
	cards.POST("", cardHandler.CreateCard)
	cards.GET("", cardHandler.GetCards)
	cards.GET("/:id", cardHandler.GetCard)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)
	cards.POST("/:id/default", cardHandler.SetDefaultCard)

	log.Infof("Starting SubTracker backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
