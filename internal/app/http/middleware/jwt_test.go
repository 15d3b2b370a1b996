package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"companion-app/config"
	"companion-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = testSecret

	r := gin.New()
	r.Use(middleware.AuthMiddleware())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"email":   c.GetString("email"),
		})
	})
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
	})

	t.Run("no bearer prefix", func(t *testing.T) {
		token := sign(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
		assert.Equal(t, http.StatusUnauthorized, request(r, token).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer abc.def.ghi").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(time.Hour).Unix()}, "other")
		assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer "+token).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := sign(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Minute).Unix()}, testSecret)
		assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer "+token).Code)
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		token := sign(t, jwt.MapClaims{"email": "a@b.co", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
		assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer "+token).Code)
	})

	t.Run("valid token exposes claims", func(t *testing.T) {
		token := sign(t, jwt.MapClaims{
			"user_id": "2f5b1e7c-0000-4000-8000-000000000001",
			"email":   "a@b.co",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		resp := request(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"user_id":"2f5b1e7c-0000-4000-8000-000000000001","email":"a@b.co"}`, resp.Body.String())
	})
}
