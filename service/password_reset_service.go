package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"

	"github.com/google/uuid"
)

// resetRequestMessage is returned whether or not the email is registered.
const resetRequestMessage = "If that email is registered, a password reset link has been sent"

// PasswordResetService owns the two-step reset flow: issuing a one-time
// token and redeeming it exactly once.
type PasswordResetService struct {
	userRepo    repository.IUserRepository
	tokenRepo   repository.IResetTokenRepository
	hasher      *HashService
	mailer      IMailer
	tokenTTL    time.Duration
	frontendURL string
}

func NewPasswordResetService(
	userRepo repository.IUserRepository,
	tokenRepo repository.IResetTokenRepository,
	hasher *HashService,
	mailer IMailer,
	tokenTTL time.Duration,
	frontendURL string,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		hasher:      hasher,
		mailer:      mailer,
		tokenTTL:    tokenTTL,
		frontendURL: frontendURL,
	}
}

// RequestReset issues a reset token and emails it. The response message is
// identical whether the email exists or not.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, *common.AppError) {
	if email == "" {
		return "", common.NewValidationError("Please provide an email address")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Unknown email: same response, nothing persisted.
			return resetRequestMessage, nil
		}
		return "", common.NewInternalError("Could not process reset request", err)
	}

	secret, err := generateResetSecret()
	if err != nil {
		return "", common.NewInternalError("Could not process reset request", err)
	}

	token := &model.ResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: s.hasher.HashToken(secret),
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return "", common.NewInternalError("Could not process reset request", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, secret)
	body := fmt.Sprintf(
		`<p>You requested a password reset. Click the link below to reset your password:</p>
<a href="%s">%s</a>
<p>This link expires in 1 hour. If you didn't request this, ignore this email.</p>`,
		resetURL, resetURL,
	)

	if err := s.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		// The token row stays behind; only delivery failed.
		return "", common.NewInternalError("Failed to send reset email", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Password reset token issued")
	return resetRequestMessage, nil
}

// RedeemReset consumes a reset token and sets the new password. The token is
// located by the digest of the presented secret; a miss and an expired token
// produce the same failure.
func (s *PasswordResetService) RedeemReset(ctx context.Context, secret, newPassword string) *common.AppError {
	if secret == "" || newPassword == "" {
		return common.NewValidationError("Please provide token and password")
	}

	token, err := s.tokenRepo.GetByTokenHash(ctx, s.hasher.HashToken(secret))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewInvalidOrExpiredError("Invalid or expired reset token")
		}
		return common.NewInternalError("Could not reset password", err)
	}

	if token.Expired(time.Now()) {
		return common.NewInvalidOrExpiredError("Invalid or expired reset token")
	}

	hashedPassword, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return common.NewInternalError("Could not reset password", err)
	}

	// Setting the password also clears the refresh-token digest, forcing a
	// fresh login on every device.
	if err := s.userRepo.ResetPassword(ctx, token.UserID, hashedPassword); err != nil {
		return common.NewInternalError("Could not reset password", err)
	}

	if err := s.tokenRepo.DeleteByID(ctx, token.ID); err != nil {
		return common.NewInternalError("Could not reset password", err)
	}

	logger.Log.WithField("user_id", token.UserID).Info("Password reset completed")
	return nil
}

func generateResetSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
