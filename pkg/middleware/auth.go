package middleware

import (
	"net/http"
	"strings"

	"wanderlog/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Denylist reports whether a token has been revoked by a sign-out.
type Denylist interface {
	IsRevoked(token string) bool
}

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context. A nil denylist disables revocation
// checks.
func AuthMiddleware(jwtService *jwt.Service, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if denylist != nil && denylist.IsRevoked(token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token", token)
		c.Next()
	}
}
