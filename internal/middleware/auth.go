package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/portal-api/internal/guard"
	"github.com/doctorsportal/portal-api/internal/utils"
)

// EmailKey is the gin context key under which the verified caller email is stored.
const EmailKey = "email"

// AuthMiddleware verifies the bearer token. A missing header is unauthorized;
// a present but invalid or expired token is forbidden.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and consults the role guard.
func AdminMiddleware(roles *guard.RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(EmailKey)
		decision, err := roles.Admin(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check role"})
			return
		}
		Abort(c, decision)
	}
}

// Abort translates a guard decision into an HTTP response. Allow is a no-op
// so the chain continues.
func Abort(c *gin.Context, d guard.Decision) {
	switch d {
	case guard.Unauthorized:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
	case guard.Forbidden:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
	}
}
