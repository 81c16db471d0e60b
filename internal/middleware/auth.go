package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware verifies the Bearer token and stores the caller's
// auth.Principal in the gin context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required", "code": "UNAUTHORIZED"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format (must be Bearer)", "code": "UNAUTHORIZED"})
			return
		}

		// 2. --- Validate Token ---
		p, err := tokens.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token", "code": "UNAUTHORIZED"})
			return
		}

		// 3. --- Success ---
		c.Set(principalKey, p)
		c.Next()
	}
}

// Principal returns the caller set by AuthMiddleware.
func Principal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
