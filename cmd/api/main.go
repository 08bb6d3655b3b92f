package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/token"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance tracker backend with token-based authentication, expense tracking, and category management.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration; missing token configuration is fatal here, never
	// during a request.
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Signing configuration is read once and passed by reference; nothing in
	// the request path reads the environment.
	tokens := token.NewManager(token.Config{
		AccessSecret:  appConfig.AccessSecret,
		AccessTTL:     appConfig.AccessTTL,
		RefreshSecret: appConfig.RefreshSecret,
		RefreshTTL:    appConfig.RefreshTTL,
	})

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, categoryService)
	authService := services.NewAuthService(db, userService, categoryService, expenseService, tokens)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Custom binding validators
	validator.Register()

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
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/guest", authHandler.GuestLogin)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Auth routes requiring a valid access token
	authProtected := auth.Group("/")
	authProtected.Use(middleware.Auth(tokens))
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/me", authHandler.GetMe)
	authProtected.DELETE("/delete-account", authHandler.DeleteAccount)

	// Protected resource routes
	protected := router.Group("/")
	protected.Use(middleware.Auth(tokens))

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetUserExpenses)
	expenses.GET("/summary/monthly", expenseHandler.GetMonthlySummary)
	expenses.GET("/summary/dashboard", expenseHandler.GetDashboard)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
