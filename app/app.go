// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-ledger-api/config"
	"go-ledger-api/db"
	"go-ledger-api/handler"
	"go-ledger-api/logger"
	"go-ledger-api/repository"
	"go-ledger-api/router"
	"go-ledger-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go-ledger-api/docs"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services, and handlers together.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	customerRepo := repository.NewCustomerRepository(database)
	transferRepo := repository.NewTransferRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	userRepo := repository.NewUserRepository(database)

	tokenStore := service.NewRedisTokenStore(redisClient)
	authService := service.NewAuthService(userRepo, tokenStore)
	customerService := service.NewCustomerService(customerRepo, transferRepo, paymentRepo)
	ledgerService := service.NewLedgerService(database, customerRepo, transferRepo)
	cashService := service.NewCashService(database, customerRepo, paymentRepo)

	userHandler := handler.NewUserHandler(userRepo, authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	cashHandler := handler.NewCashHandler(cashService)
	transferHandler := handler.NewTransferHandler(ledgerService, customerService)
	paymentHandler := handler.NewPaymentHandler(cashService, customerService)

	return router.NewRouter(userHandler, customerHandler, cashHandler, transferHandler, paymentHandler)
}

// TestApp exposes the wired router and its backing connections for
// integration tests.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

// NewTestApp wires the full application against the given connections,
// without starting an HTTP server.
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Redis:  redisClient,
		Router: buildRouter(database, redisClient),
	}
}
