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
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, role string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "2f0c7a1e-9c1c-4c5e-9e7b-0f8d3a6b1c2d",
		"email":   "tester@spa.test",
		"role":    role,
		"exp":     time.Now().Add(dur).Unix(),
		"iat":     time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	r.GET("/admin", RequireRole("ADMIN"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingToken(t *testing.T) {
	w := get(testRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	w := get(testRouter(), "/protected", signToken(t, "REQUESTER", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REQUESTER")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	w := get(testRouter(), "/protected", signToken(t, "REQUESTER", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := testRouter()

	assert.Equal(t, http.StatusOK, get(r, "/admin", signToken(t, "ADMIN", time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, "REQUESTER", time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, "PROCUREMENT", time.Hour)).Code)
}
