// file: service/user_service_test.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"go-auth-api/model"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCacheClient struct{ mock.Mock }

func (m *mockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}
func (m *mockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}
func (m *mockCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func cacheMiss() *redis.StringCmd { return redis.NewStringResult("", redis.Nil) }
func cacheOK() *redis.StatusCmd   { return redis.NewStatusResult("OK", nil) }
func cacheDeleted() *redis.IntCmd { return redis.NewIntResult(1, nil) }

func TestUserService_GetAllUsers(t *testing.T) {
	users := []*model.User{
		{ID: "user-1", Name: "Ann", Email: "ann@x.com", Role: model.RoleAdmin},
		{ID: "user-2", Name: "Bob", Email: "bob@x.com", Role: model.RoleUser},
	}

	t.Run("cache miss falls through to the database and populates the cache", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		cache := new(mockCacheClient)
		cache.On("Get", mock.Anything, "users:all").Return(cacheMiss()).Once()
		userRepo.On("GetAllUsers", mock.Anything).Return(users, nil).Once()
		cache.On("Set", mock.Anything, "users:all", mock.Anything, 10*time.Minute).Return(cacheOK()).Once()

		svc := NewUserService(userRepo, cache)
		profiles, appErr := svc.GetAllUsers(context.Background())

		assert.Nil(t, appErr)
		assert.Len(t, profiles, 2)
		assert.Equal(t, "user-1", profiles[0].ID)
		assert.Equal(t, model.RoleAdmin, profiles[0].Role)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit never touches the database", func(t *testing.T) {
		cached, err := json.Marshal([]model.Profile{users[0].Profile()})
		assert.NoError(t, err)

		userRepo := new(mockUserRepo)
		cache := new(mockCacheClient)
		cache.On("Get", mock.Anything, "users:all").Return(redis.NewStringResult(string(cached), nil)).Once()

		svc := NewUserService(userRepo, cache)
		profiles, appErr := svc.GetAllUsers(context.Background())

		assert.Nil(t, appErr)
		assert.Len(t, profiles, 1)
		assert.Equal(t, "ann@x.com", profiles[0].Email)
		userRepo.AssertNotCalled(t, "GetAllUsers")
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByID", mock.Anything, "user-1").
			Return(&model.User{ID: "user-1", Name: "Ann", Email: "ann@x.com", Role: model.RoleUser}, nil).Once()

		svc := NewUserService(userRepo, new(mockCacheClient))
		profile, appErr := svc.GetUserByID(context.Background(), "user-1")

		assert.Nil(t, appErr)
		assert.Equal(t, "Ann", profile.Name)
	})

	t.Run("not found", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows).Once()

		svc := NewUserService(userRepo, new(mockCacheClient))
		_, appErr := svc.GetUserByID(context.Background(), "nope")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestUserService_UpdateUserRole(t *testing.T) {
	t.Run("rejects roles outside the whitelist", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo, new(mockCacheClient))

		appErr := svc.UpdateUserRole(context.Background(), "user-1", model.Role("superuser"))

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Invalid role specified", appErr.Message)
		userRepo.AssertNotCalled(t, "UpdateUserRole")
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("UpdateUserRole", mock.Anything, "nope", "admin").Return(false, nil).Once()

		svc := NewUserService(userRepo, new(mockCacheClient))
		appErr := svc.UpdateUserRole(context.Background(), "nope", model.RoleAdmin)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("success invalidates the cached list", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		cache := new(mockCacheClient)
		userRepo.On("UpdateUserRole", mock.Anything, "user-2", "admin").Return(true, nil).Once()
		cache.On("Del", mock.Anything, []string{"users:all"}).Return(cacheDeleted()).Once()

		svc := NewUserService(userRepo, cache)
		appErr := svc.UpdateUserRole(context.Background(), "user-2", model.RoleAdmin)

		assert.Nil(t, appErr)
		cache.AssertExpectations(t)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("DeleteUser", mock.Anything, "nope").Return(false, nil).Once()

		svc := NewUserService(userRepo, new(mockCacheClient))
		appErr := svc.DeleteUser(context.Background(), "nope")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("success invalidates the cached list", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		cache := new(mockCacheClient)
		userRepo.On("DeleteUser", mock.Anything, "user-2").Return(true, nil).Once()
		cache.On("Del", mock.Anything, []string{"users:all"}).Return(cacheDeleted()).Once()

		svc := NewUserService(userRepo, cache)
		appErr := svc.DeleteUser(context.Background(), "user-2")

		assert.Nil(t, appErr)
		cache.AssertExpectations(t)
	})
}
