package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"prive-ledger/pkg/cache"
	"prive-ledger/pkg/config"
	"prive-ledger/pkg/database"
	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/repo/persistent"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/redis/go-redis/v9"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	accountRepo := persistent.NewAccountRepository(db)
	transactionRepo := persistent.NewTransactionRepository(db)
	entitlementRepo := persistent.NewEntitlementRepository(db)
	ledger := usecase.NewLedgerUseCase(accountRepo, transactionRepo, entitlementRepo, cfg.SignupBonus, log)

	if err := seedLedger(ledger, redisClient, log); err != nil {
		log.Error("Failed to seed ledger: %v", err)
		panic(err)
	}

	log.Info("Ledger seeded successfully!")
}

func seedLedger(ledger usecase.LedgerUseCase, redisClient *redis.Client, log *logger.Logger) error {
	testUsers := []string{
		"alice",
		"bob",
		"charlie",
		"diana",
		"eve",
	}

	for _, userID := range testUsers {
		account, err := ledger.ProvisionAccount(userID)
		if err != nil {
			return fmt.Errorf("failed to provision account for %s: %w", userID, err)
		}
		log.Info("Provisioned account for %s with balance %d", userID, account.Balance)
	}

	// Locked content owned by the seeded creators, cached the way the
	// content services publish it.
	lockedContent := []struct {
		key       string
		creatorID string
		price     int64
	}{
		{"post:seed-post-1", "alice", 500},
		{"post:seed-post-2", "bob", 990},
		{"post:seed-post-3", "charlie", 1490},
		{"message:seed-msg-1", "diana", 990},
	}

	ctx := context.Background()
	for _, content := range lockedContent {
		if err := redisClient.HSet(ctx, content.key, map[string]interface{}{
			"creator_id": content.creatorID,
			"price":      content.price,
			"locked":     "true",
		}).Err(); err != nil {
			return fmt.Errorf("failed to cache %s: %w", content.key, err)
		}
		redisClient.Expire(ctx, content.key, 7*24*time.Hour)
		log.Info("Cached locked content %s owned by %s", content.key, content.creatorID)
	}

	// Give each creator a tip so the transaction feeds are not empty.
	for i, userID := range testUsers {
		if i == 0 {
			continue
		}
		account, err := ledger.GetAccount(userID)
		if err != nil {
			return err
		}
		if _, err := ledger.Credit(account.ID, 1000, entity.TransactionKindTip, fmt.Sprintf("Tip from %s", testUsers[i-1])); err != nil {
			return fmt.Errorf("failed to seed tip for %s: %w", userID, err)
		}
	}

	log.Info("Created test accounts and content")
	return nil
}
