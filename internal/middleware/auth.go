package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/pkg/auth"
	"github.com/clinichq/clinic-api/pkg/httputil"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

type AuthMiddleware struct {
	tokens auth.JWTService
}

func NewAuthMiddleware(tokens auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the Bearer token and puts the staff identity in
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the named roles. Must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httputil.Response{
			Success: false,
			Error: &httputil.Error{
				Code:    http.StatusForbidden,
				Message: "permission denied",
			},
		})
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}

// UserID returns the authenticated staff id set by Authenticate.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}
