package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-staffhub/internal/auth"
	"go-staffhub/internal/middleware"
)

func setupProtectedRouter(tokens *auth.TokenIssuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{middleware.Auth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	router.GET("/api/employees", handlers...)
	return router
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", "staffhub", "staffhub-api", 24*time.Hour)

	user := &auth.User{
		ID:       uuid.New(),
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     auth.RoleSales,
	}
	token, err := tokens.Issue(user)
	assert.NoError(t, err)

	router := setupProtectedRouter(tokens)

	t.Run("Sales Token Reaches Employee Endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), auth.RoleSales)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Tampered Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		expiredIssuer := auth.NewTokenIssuer("test-secret", "staffhub", "staffhub-api", 24*time.Hour)
		expiredIssuer.Now = func() time.Time { return past }

		expired, err := expiredIssuer.Issue(user)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+expired)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", "staffhub", "staffhub-api", 24*time.Hour)

	adminToken, _ := tokens.Issue(&auth.User{ID: uuid.New(), Username: "admin", Role: auth.RoleAdmin})
	salesToken, _ := tokens.Issue(&auth.User{ID: uuid.New(), Username: "jdoe", Role: auth.RoleSales})

	router := setupProtectedRouter(tokens, middleware.RequireRoles(auth.RoleAdmin))

	t.Run("Admin Allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Sales Forbidden On Admin-Only Route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+salesToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
