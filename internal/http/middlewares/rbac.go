package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates an endpoint to one dashboard role. RequireAuth must
// run first so the identity is on the context.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Missing identity context",
			})
			return
		}
		if role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied.",
			})
			return
		}
		c.Next()
	}
}
