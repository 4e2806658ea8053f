package service

import (
	"context"
	"database/sql"
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"

	"github.com/google/uuid"
)

// credentialErrorMessage is shared by the unknown-email and wrong-password
// paths so a caller cannot tell which check failed.
const credentialErrorMessage = "Incorrect email or password"

// AuthService orchestrates the session lifecycle: signup, login, refresh
// rotation and logout.
type AuthService struct {
	userRepo repository.IUserRepository
	hasher   *HashService
	tokens   *TokenService
}

func NewAuthService(userRepo repository.IUserRepository, hasher *HashService, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Signup registers a new user and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.Profile, *model.TokenPair, *common.AppError) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, nil, common.NewValidationError("Please provide name, email, and password")
	}

	hashedPassword, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, nil, common.NewInternalError("Could not create user", err)
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, common.NewConflictError("Email already in use")
		}
		return nil, nil, common.NewInternalError("Could not create user", err)
	}

	pair, appErr := s.issueTokens(ctx, user)
	if appErr != nil {
		return nil, nil, appErr
	}

	logger.Log.WithField("user_id", user.ID).Info("User signed up successfully")

	profile := user.Profile()
	return &profile, pair, nil
}

// Login verifies credentials and rotates the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Profile, *model.TokenPair, *common.AppError) {
	if email == "" || password == "" {
		return nil, nil, common.NewValidationError("Please provide email and password")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.NewUnauthorizedError(credentialErrorMessage)
		}
		return nil, nil, common.NewInternalError("Could not log in", err)
	}

	if !s.hasher.CheckPasswordHash(password, user.Password) {
		return nil, nil, common.NewUnauthorizedError(credentialErrorMessage)
	}

	pair, appErr := s.issueTokens(ctx, user)
	if appErr != nil {
		return nil, nil, appErr
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")

	profile := user.Profile()
	return &profile, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. Rotation is a
// compare-and-swap on the stored digest: presenting a pre-rotation token, or
// losing the race to a concurrent refresh, fails with 401.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, *common.AppError) {
	if refreshToken == "" {
		return nil, common.NewValidationError("Refresh token required")
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, common.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, common.NewInternalError("Could not refresh session", err)
	}

	if user.RefreshTokenHash == "" || !s.hasher.CheckTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, common.NewUnauthorizedError("Invalid refresh token")
	}

	newRefreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, common.NewInternalError("Could not refresh session", err)
	}

	rotated, err := s.userRepo.RotateRefreshTokenHash(ctx, user.ID, user.RefreshTokenHash, s.hasher.HashToken(newRefreshToken))
	if err != nil {
		return nil, common.NewInternalError("Could not refresh session", err)
	}
	if !rotated {
		// The stored digest changed between the read and the swap: another
		// refresh or a logout won the race.
		return nil, common.NewUnauthorizedError("Invalid refresh token")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, common.NewInternalError("Could not refresh session", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Tokens refreshed successfully")

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout invalidates every outstanding refresh token for the user. Calling it
// twice is harmless.
func (s *AuthService) Logout(ctx context.Context, userID string) *common.AppError {
	_, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewNotFoundError("User not found")
		}
		return common.NewInternalError("Could not log out", err)
	}

	if err := s.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		return common.NewInternalError("Could not log out", err)
	}

	logger.Log.WithField("user_id", userID).Info("User logged out successfully")
	return nil
}

// issueTokens mints a refresh token, persists its digest and only then mints
// the access token. The persist step failing fails the whole operation, so a
// token is never handed out without its digest recorded.
func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*model.TokenPair, *common.AppError) {
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, common.NewInternalError("Could not issue tokens", err)
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, s.hasher.HashToken(refreshToken)); err != nil {
		return nil, common.NewInternalError("Could not issue tokens", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, common.NewInternalError("Could not issue tokens", err)
	}

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
