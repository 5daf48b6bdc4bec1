package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prive-ledger/pkg/config"
	"prive-ledger/pkg/jwt"
	"prive-ledger/pkg/logger"
	"prive-ledger/pkg/middleware"
	"prive-ledger/pkg/queue"
	ledgerHTTP "prive-ledger/services/ledger/internal/controller/http"
	"prive-ledger/services/ledger/internal/repo/persistent"
	"prive-ledger/services/ledger/internal/resolver"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "prive-ledger/services/ledger/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	accountRepo := persistent.NewAccountRepository(db)
	transactionRepo := persistent.NewTransactionRepository(db)
	entitlementRepo := persistent.NewEntitlementRepository(db)

	// Initialize use cases
	ownerResolver := resolver.NewRedisResolver(redisClient)
	ledgerUseCase := usecase.NewLedgerUseCase(accountRepo, transactionRepo, entitlementRepo, cfg.SignupBonus, log)
	monetizationUseCase := usecase.NewMonetizationUseCase(ledgerUseCase, ownerResolver, cfg.PlatformFeeBps, queueClient, log)
	payoutUseCase := usecase.NewPayoutUseCase(ledgerUseCase, cfg.MinWithdrawal, queueClient, log)

	// Initialize HTTP handlers
	walletHandler := ledgerHTTP.NewWalletHandler(ledgerUseCase, log)
	monetizationHandler := ledgerHTTP.NewMonetizationHandler(monetizationUseCase, log)
	payoutHandler := ledgerHTTP.NewPayoutHandler(payoutUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.GET("/wallet", walletHandler.GetWallet)
		api.POST("/wallet/deposit", walletHandler.Deposit)
		api.GET("/wallet/transactions", walletHandler.GetTransactions)
		api.GET("/wallet/entitlements", walletHandler.GetEntitlements)

		api.GET("/subscriptions", monetizationHandler.GetSubscriptions)
		api.POST("/subscriptions/:creator_id", monetizationHandler.Subscribe)
		api.DELETE("/subscriptions/:creator_id", monetizationHandler.Unsubscribe)
		api.POST("/unlock/post/:post_id", monetizationHandler.UnlockPost)
		api.POST("/unlock/message/:message_id", monetizationHandler.UnlockMessage)
		api.POST("/tips/:creator_id", monetizationHandler.Tip)

		api.POST("/withdrawals", payoutHandler.RequestWithdrawal)
	}

	// Settlement callbacks from the payment processor - admin role required
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.POST("/withdrawals/:transaction_id/confirm", payoutHandler.ConfirmWithdrawal)
		admin.POST("/withdrawals/:transaction_id/fail", payoutHandler.FailWithdrawal)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Ledger service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down ledger service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Ledger service exited")
}
