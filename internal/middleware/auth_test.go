package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/inventory-api/internal/config"
	"github.com/stockpilot/inventory-api/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/secure",
		AuthMiddleware(&config.Config{JWTSecret: testSecret}, nil),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotID uint
	var gotRole, gotJTI string

	r := gin.New()
	r.GET("/secure",
		AuthMiddleware(&config.Config{JWTSecret: testSecret}, nil),
		func(c *gin.Context) {
			gotID, _ = c.MustGet(ContextUserID).(uint)
			gotRole = c.GetString(ContextUserRole)
			gotJTI = c.GetString(ContextTokenID)
			c.Status(http.StatusOK)
		},
	)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": models.RoleAdmin,
		"jti":  "token-1",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 42, gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
	assert.Equal(t, "token-1", gotJTI)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := newAuthRouter()

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "not a bearer token", authorization: "Basic abc"},
		{name: "garbage token", authorization: "Bearer not.a.jwt"},
		{name: "expired token", authorization: "Bearer " + expired},
		{name: "wrong signing key", authorization: "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthenticated.")
		})
	}
}
