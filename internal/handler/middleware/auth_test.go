//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"
	pkgjwt "slotbook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject, role string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, pkgjwt.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(pkgjwt.NewVerifier(cfg.JWT.Secret))

	router := gin.New()
	router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		requester, _ := middleware.GetRequester(c)
		c.JSON(http.StatusOK, gin.H{"requester": requester})
	})
	router.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func getWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	cfg := config.NewTestConfig()
	router := newAuthRouter(cfg)

	t.Run("valid token passes requester through", func(t *testing.T) {
		token := signToken(t, cfg.JWT.Secret, "alice", "", time.Now().Add(time.Hour))
		rec := getWithToken(router, "/me", token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"requester":"alice"`)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := getWithToken(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, cfg.JWT.Secret, "alice", "", time.Now().Add(-time.Hour))
		rec := getWithToken(router, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", "alice", "", time.Now().Add(time.Hour))
		rec := getWithToken(router, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without a subject is rejected", func(t *testing.T) {
		token := signToken(t, cfg.JWT.Secret, "", "", time.Now().Add(time.Hour))
		rec := getWithToken(router, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	cfg := config.NewTestConfig()
	router := newAuthRouter(cfg)

	t.Run("admin role allowed", func(t *testing.T) {
		token := signToken(t, cfg.JWT.Secret, "root", middleware.RoleAdmin, time.Now().Add(time.Hour))
		rec := getWithToken(router, "/admin", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain requester forbidden", func(t *testing.T) {
		token := signToken(t, cfg.JWT.Secret, "alice", "", time.Now().Add(time.Hour))
		rec := getWithToken(router, "/admin", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	// Burst of 2 admits the first two, the third is throttled.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
