package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"go-auth-api/common"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"
)

const userListCacheKey = "users:all"

// UserService handles the protected user-management surface. List reads go
// through a cache-aside path; writes invalidate it.
type UserService struct {
	userRepo repository.IUserRepository
	cache    ICacheClient
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository, cache ICacheClient) *UserService {
	return &UserService{userRepo: userRepo, cache: cache}
}

// GetAllUsers returns the public profiles of every user, utilizing a
// cache-aside strategy.
func (s *UserService) GetAllUsers(ctx context.Context) ([]model.Profile, *common.AppError) {
	// 1. Try to get data from the cache.
	if cached, err := s.cache.Get(ctx, userListCacheKey).Result(); err == nil {
		var profiles []model.Profile
		if err := json.Unmarshal([]byte(cached), &profiles); err == nil {
			return profiles, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, common.NewInternalError("Could not retrieve users", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}

	// 3. Store the result in the cache for future requests.
	if data, err := json.Marshal(profiles); err == nil {
		s.cache.Set(ctx, userListCacheKey, data, 10*time.Minute)
	}

	return profiles, nil
}

// GetUserByID returns one user's public profile.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.Profile, *common.AppError) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFoundError("User not found")
		}
		return nil, common.NewInternalError("Could not retrieve user", err)
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateUserRole validates the role and calls the repository to update it.
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, newRole model.Role) *common.AppError {
	// We ensure that only valid roles can be assigned.
	if newRole != model.RoleAdmin && newRole != model.RoleUser {
		return common.NewValidationError("Invalid role specified")
	}

	updated, err := s.userRepo.UpdateUserRole(ctx, userID, string(newRole))
	if err != nil {
		return common.NewInternalError("Could not update user role", err)
	}
	if !updated {
		return common.NewNotFoundError("User not found")
	}

	s.cache.Del(ctx, userListCacheKey)
	return nil
}

// DeleteUser removes a user record entirely.
func (s *UserService) DeleteUser(ctx context.Context, userID string) *common.AppError {
	deleted, err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return common.NewInternalError("Could not delete user", err)
	}
	if !deleted {
		return common.NewNotFoundError("User not found")
	}

	s.cache.Del(ctx, userListCacheKey)
	return nil
}
