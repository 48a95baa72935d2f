package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newJWTTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("JWT_SECRET", testSecret)
	Setup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWT())
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.Header.Get("sub"))
	})
	return router
}

func signTestToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.Nil(t, err)
	return signed
}

func TestJWT(t *testing.T) {
	router := newJWTTestRouter(t)

	t.Run("valid token passes the subject along", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"sub": "u1"}, testSecret)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("token query parameter works as fallback", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"sub": "u2"}, testSecret)

		req := httptest.NewRequest("GET", "/whoami?token="+token, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u2", w.Body.String())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"sub": "u1"}, "wrong-secret")

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token without a subject is rejected", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"aud": "socialmux"}, testSecret)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
