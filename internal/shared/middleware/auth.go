package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookcourier-backend/internal/shared/response"
	"bookcourier-backend/pkg/jwt"
)

const identityKey = "caller_email"

// Auth verifies the bearer token issued by the identity provider and threads
// the verified caller email through the request context. Business logic never
// reads raw headers.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(identityKey, claims.Email)
		c.Next()
	}
}

// CallerEmail returns the verified caller email set by Auth, if any.
func CallerEmail(c *gin.Context) string {
	return c.GetString(identityKey)
}
