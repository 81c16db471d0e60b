package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// RequireRole must run after AuthMiddleware. It lets the request through
// only when the caller has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "code": "UNAUTHORIZED"})
			return
		}

		if !slices.Contains(roles, p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for role " + p.Role, "code": "FORBIDDEN"})
			return
		}

		c.Next()
	}
}
