package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/auth"
	"storefront_backend/internal/logger"
)

const (
	// Context keys set for authenticated requests.
	CtxUserID    = "userID"
	CtxUserLevel = "userLevel"
)

// AuthMiddleware validates the bearer token and stores the user's ID
// and authorization level in the context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserLevel, claims.Level)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
