package middleware

import (
	"net/http"
	"strings"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by Identity
const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"

	UserIDHeader = "X-User-Id"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// Identity resolves who is calling. A Bearer token takes precedence and must
// be valid; otherwise the X-User-Id header is trusted as an opaque id.
// Requests with neither continue anonymously.
func Identity(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// Extract token (format: "Bearer <token>")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyRole, claims.Role)
			c.Next()
			return
		}

		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(ContextKeyUserID, id)
		}
		c.Next()
	}
}

// RequesterFrom reads the identity Identity stored on the context.
func RequesterFrom(c *gin.Context) service.Requester {
	return service.Requester{
		UserID:   c.GetString(ContextKeyUserID),
		Username: c.GetString(ContextKeyUsername),
		Role:     c.GetString(ContextKeyRole),
	}
}

// RequireAuth rejects requests that did not present a valid Bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyClaims); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		c.Next()
	}
}

// RequireRole checks if the user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextKeyRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token"})
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Insufficient permissions",
			"required": roles,
			"current":  userRole,
		})
	}
}

// RequireAdmin is a convenience function for requiring an admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
}
