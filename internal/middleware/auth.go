package middleware

import (
	"net/http"

	"loyaltyflow/internal/repository"
	"loyaltyflow/internal/service"
	"loyaltyflow/pkg/constraints"

	"github.com/gin-gonic/gin"
)

// SDKAuthMiddleware admits reward-issuance clients presenting a configured API key.
func SDKAuthMiddleware(repo repository.SDKRepository, bypass bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bypass {
			c.Next()
			return
		}

		apiKey := c.GetHeader(constraints.HeaderSDKKey)
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		ok, err := repo.ValidateAPIKey(c.Request.Context(), apiKey)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		ctx := service.WithOperator(c.Request.Context(), &service.OperatorInfo{
			Name: "sdk",
			Role: "sdk",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
