package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loyaltyflow/internal/api"
	"loyaltyflow/internal/config"
	"loyaltyflow/internal/metrics"
	"loyaltyflow/internal/repository"
	"loyaltyflow/internal/service"
	"loyaltyflow/pkg/campaign"
	"loyaltyflow/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.InitLogger(cfg.Server.Environment)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("application startup failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	rdb := initRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	registry := campaign.Default()
	svc := service.NewCampaignService(registry, metrics.NewPrometheusObserver(), service.WithLocation(loc))
	authSvc := service.NewAuthService(cfg.Auth.SigningKey, cfg.Auth.AccessTokenTTL)
	sdkRepo := repository.NewStaticSDKKeyRepository(cfg.Auth.SDKKeys)

	logger.Info("campaign type catalog loaded", zap.Int("types", registry.Len()))

	r := api.RegisterRoutes(api.NewCampaignHandler(svc), api.RouterConfig{
		SDKRepo:           sdkRepo,
		Tokens:            authSvc,
		Redis:             rdb,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Env:               cfg.Server.Environment,
		DevMode:           cfg.Auth.DevMode,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited properly")
	return nil
}

// initRedis returns nil when no address is configured or Redis is unreachable;
// rate limiting then stays process-local.
func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logger.Info("redis not configured, using local rate limiting")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, using local rate limiting",
			zap.String("addr", cfg.Addr), zap.Error(err))
		rdb.Close()
		return nil
	}
	return rdb
}
