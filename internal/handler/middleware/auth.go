package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"slotbook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxRequesterKey = "requester"
	ctxRoleKey      = "requester_role"

	RoleAdmin = "admin"
)

// AuthMiddleware verifies bearer tokens and exposes the requester
// identity to the handlers. Token issuance belongs to the identity
// service; this side only validates.
type AuthMiddleware struct {
	verifier *jwt.Verifier
}

func NewAuthMiddleware(verifier *jwt.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.verifier.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxRequesterKey, claims.Requester)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin guards the catalog administration endpoints. Must run
// after RequireAuth().
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ctxRoleKey)
		if role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetRequester(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxRequesterKey)
	if !exists {
		return "", false
	}
	requester, ok := v.(string)
	return requester, ok && requester != ""
}
