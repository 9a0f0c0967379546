package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the bearer token, rejects revoked
// tokens, and stashes the caller's identity on the request context.
func AuthMiddleware(revoked repositories.RevokedTokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "missing authentication token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, http.StatusUnauthorized, "malformed authentication token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), parts[1])
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to verify session")
			c.Abort()
			return
		}
		if isRevoked {
			utils.Error(c, http.StatusUnauthorized, "session has been logged out")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("token", parts[1])
		expiresAt := time.Time{}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		c.Set("token_expires_at", expiresAt)
		c.Next()
	}
}
