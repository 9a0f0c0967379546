package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

// AdminSecret gates role elevation behind the X-Admin-Secret header.
// The secret travels in a header, never in a request body, so it
// cannot leak into logged payloads.
func AdminSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.Admin.Secret
		presented := c.GetHeader("X-Admin-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			utils.Error(c, http.StatusForbidden, "invalid admin secret")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only callers whose token carries the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			utils.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
