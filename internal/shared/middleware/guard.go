package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/internal/shared/response"
)

// RoleResolver resolves the role for a verified caller email.
// Implemented by the user service; declared here to avoid a domain import.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (string, error)
}

// RequireRole permits the request only when the caller's resolved role is in
// the allowed set. Must run after Auth. An unknown caller is Forbidden, a
// missing identity is Unauthenticated.
func RequireRole(resolver RoleResolver, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			response.Unauthorized(c, "caller identity required")
			c.Abort()
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), email)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				response.Forbidden(c, "access denied")
				c.Abort()
				return
			}
			response.FromError(c, err)
			c.Abort()
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "access denied")
		c.Abort()
	}
}
