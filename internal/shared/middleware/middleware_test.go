package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =====================================================
// AUTH
// =====================================================

func authRouter(manager *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CallerEmail(c)})
	})
	return r
}

func TestAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := authRouter(manager)

	t.Run("valid token threads the caller email", func(t *testing.T) {
		token, err := manager.GenerateToken("reader@example.com", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "reader@example.com")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := jwt.NewManager("different-secret")
		token, err := other.GenerateToken("reader@example.com", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =====================================================
// ROLE GUARD
// =====================================================

type staticResolver struct {
	roles map[string]string
}

func (r *staticResolver) ResolveRole(ctx context.Context, email string) (string, error) {
	role, ok := r.roles[email]
	if !ok {
		return "", apperror.New(apperror.KindNotFound, "user not found")
	}
	return role, nil
}

func guardRouter(manager *jwt.Manager, resolver RoleResolver, allowed ...string) *gin.Engine {
	r := gin.New()
	r.GET("/guarded", Auth(manager), RequireRole(resolver, allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRole(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	resolver := &staticResolver{roles: map[string]string{
		"admin@example.com":  "admin",
		"reader@example.com": "user",
	}}
	router := guardRouter(manager, resolver, "admin")

	request := func(email string) *httptest.ResponseRecorder {
		token, err := manager.GenerateToken(email, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed role passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request("admin@example.com").Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("reader@example.com").Code)
	})

	t.Run("unknown caller is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("ghost@example.com").Code)
	})

	t.Run("no identity is unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
