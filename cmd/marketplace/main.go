package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/marketplace/internal/cli"
	"storefront/marketplace/internal/config"
	"storefront/marketplace/internal/logging"
	"storefront/marketplace/internal/repository"
	"storefront/marketplace/internal/service"
)

func main() {
	// 1. Load config (env, optionally <dbname> <port> <user> args)
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New("marketplace-cli", cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("session_id", uuid.NewString()))

	// 2. Setup Database. Connection failure aborts startup; everything past
	// this point is recoverable inside the menu loop.
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	// 3. Setup Logic
	repo := repository.NewMarketRepository(dbPool)
	counter := service.NewOrderCounter(cfg.OrderNumberBase)
	marketSvc := service.NewMarketService(repo, logger)
	orderSvc := service.NewOrderService(repo, counter, logger)

	// 4. Run the menu loop
	session := cli.New(os.Stdin, os.Stdout, marketSvc, orderSvc, logger)
	if err := session.Run(ctx); err != nil {
		logger.Error("session ended with error", zap.Error(err))
	}
	logger.Info("disconnecting from database")
}
