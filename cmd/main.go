package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/mIRRONEL/4-tier-app/internal/api/http/router"
	httpServer "github.com/mIRRONEL/4-tier-app/internal/api/http/server"
	"github.com/mIRRONEL/4-tier-app/internal/config"
	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
	"github.com/mIRRONEL/4-tier-app/internal/repository/postgres"
	redisrepo "github.com/mIRRONEL/4-tier-app/internal/repository/redis"
	"github.com/mIRRONEL/4-tier-app/internal/service"
	"github.com/mIRRONEL/4-tier-app/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)
	revocationRepo := redisrepo.NewRevocationRepository(redisClient)
	cacheRepo := redisrepo.NewCacheRepository(redisClient)
	tokenCodec := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	sessionService := service.NewSession(userRepo, revocationRepo, tokenCodec, cfg.JWT.RefreshTTL, logger)
	itemService := service.NewItems(itemRepo, cacheRepo, cfg.Cache.ListTTL, cfg.Cache.SearchTTL, logger)

	if err := seedAdminUser(ctx, userRepo, cfg.Seed); err != nil {
		logger.Fatal("failed to seed admin user", "error", err)
	}

	r := router.New(sessionService, itemService, cfg.HTTP.CORSOrigin, logger)
	server := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", server.Address())
		if err := server.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", server.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// seedAdminUser ensures the bootstrap admin account exists. Skipped when no
// bootstrap password is configured or the account is already present.
func seedAdminUser(ctx context.Context, users model.UserStore, seed config.Seed) error {
	if seed.AdminPassword == "" {
		return nil
	}

	_, err := users.GetByUsername(ctx, seed.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), 10)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = users.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     seed.AdminUsername,
		PasswordHash: hash,
	})
	if err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
