package main

import (
	"fmt"
	"net/http"
	"os"

	"numbers/internal/config"
	"numbers/internal/database"
	"numbers/internal/events"
	"numbers/internal/handlers"
	"numbers/internal/logger"
	"numbers/internal/middleware"
	"numbers/internal/services"
	"numbers/internal/validator"

	"github.com/gin-gonic/gin"
)

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Event publisher: AMQP when configured, otherwise discard
	var publisher events.Publisher = events.Noop{}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db, publisher)
	billService := services.NewBillService(db, publisher)
	importService := services.NewImportService(ledgerService, billService, publisher)
	summaryService := services.NewSummaryService(ledgerService, billService)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	accountHandler := handlers.NewAccountHandler(ledgerService, summaryService)
	billHandler := handlers.NewBillHandler(billService)
	importHandler := handlers.NewImportHandler(importService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Register custom request validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:title/outstanding", accountHandler.GetOutstanding)

	// Bill routes
	bills := v1.Group("/bills")
	bills.POST("", billHandler.SaveBill)
	bills.GET("", billHandler.ListBills)
	bills.GET("/:id", billHandler.GetBillByID)
	bills.DELETE("/:id", billHandler.DeleteBill)

	// Import routes
	imports := v1.Group("/import")
	imports.POST("/transactions", importHandler.ImportTransactions)
	imports.POST("/bills", importHandler.ImportBills)

	// Summary routes
	v1.GET("/summary/:period", summaryHandler.GetPeriodSummary)

	log.Infof("Starting Numbers ledger server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
