// file: handler/auth_middleware_test.go

package handler

import (
	"encoding/json"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestTokenService() *service.TokenService {
	return service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func decodeFailBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTestTokenService()

	var gotUserID string
	var gotRole model.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDKey).(string)
		gotRole, _ = r.Context().Value(UserRoleKey).(model.Role)
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(tokens)(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeFailBody(t, rec)["message"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeFailBody(t, rec)["message"])
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid or expired token", decodeFailBody(t, rec)["message"])
	})

	t.Run("refresh token is not accepted as access token", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken("user-1")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token populates the request context", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken("user-1", model.RoleAdmin)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.Equal(t, model.RoleAdmin, gotRole)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := newTestTokenService()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := AuthMiddleware(tokens)(RequireRoles(model.RoleAdmin)(next))

	t.Run("user role is rejected with 403", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken("user-1", model.RoleUser)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You do not have permission to perform this action", decodeFailBody(t, rec)["message"])
	})

	t.Run("admin role passes", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken("admin-1", model.RoleAdmin)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing role value means unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRoles(model.RoleAdmin)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
