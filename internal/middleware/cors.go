package middleware

import (
	"time"

	"loyaltyflow/pkg/constraints"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CorsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			constraints.HeaderSDKKey, constraints.HeaderTraceID, constraints.HeaderDevPass,
		},
		ExposeHeaders: []string{
			constraints.HeaderRequestID, constraints.HeaderTraceID,
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset",
		},
		MaxAge: 12 * time.Hour,
	})
}
