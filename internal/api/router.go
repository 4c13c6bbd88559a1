package api

import (
	"loyaltyflow/internal/metrics"
	"loyaltyflow/internal/middleware"
	"loyaltyflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterConfig struct {
	SDKRepo           repository.SDKRepository
	Tokens            middleware.TokenParser
	Redis             *redis.Client // optional
	RequestsPerSecond int
	Env               string
	DevMode           bool
}

func RegisterRoutes(campaignHandler *CampaignHandler, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	// load tests hit the evaluate endpoint without SDK keys or throttling
	loadTest := cfg.Env == "loadtest"

	r.Use(
		middleware.CorsMiddleware(),
		middleware.RequestID(),
		middleware.TraceMiddleware(),
		middleware.GinZapLogger(),
		middleware.GinZapRecovery(),
		middleware.HttpMiddleware(),
	)
	r.SetTrustedProxies(nil)

	r.GET("/health", campaignHandler.HealthCheck)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Admin: display campaign types
	admin := r.Group("/v1")
	admin.Use(middleware.JWTMiddleware(cfg.Tokens, cfg.DevMode))
	{
		admin.GET("/campaign-types", campaignHandler.ListCampaignTypes)
		admin.GET("/campaign-types/:id", campaignHandler.GetCampaignType)
	}

	// Reward-issuance system: qualification decisions
	sdk := r.Group("/v1")
	sdk.Use(middleware.SDKAuthMiddleware(cfg.SDKRepo, loadTest))
	if !loadTest {
		sdk.Use(middleware.RateLimitMiddleware(cfg.Redis, cfg.RequestsPerSecond))
	}
	{
		sdk.POST("/campaign-types/:id/evaluate", campaignHandler.Evaluate)
	}
	return r
}
