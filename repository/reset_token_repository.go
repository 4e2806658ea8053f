// file: repository/reset_token_repository.go

package repository

import (
	"context"
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/sirupsen/logrus"
)

// IResetTokenRepository defines the contract for reset token database operations.
type IResetTokenRepository interface {
	Create(ctx context.Context, token *model.ResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*model.ResetToken, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ResetTokenRepository implements IResetTokenRepository.
type ResetTokenRepository struct {
	DB *sql.DB
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(db *sql.DB) *ResetTokenRepository {
	return &ResetTokenRepository{DB: db}
}

// Create inserts a new reset token record into the database.
func (r *ResetTokenRepository) Create(ctx context.Context, token *model.ResetToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new reset token")

	query := `INSERT INTO reset_tokens (id, user_id, token_hash, expires_at) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query, token.ID, token.UserID, token.TokenHash, token.ExpiresAt).Scan(&token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create reset token query")
		return err
	}
	return nil
}

// GetByTokenHash retrieves a reset token by the digest of its secret. The
// digest is a unique column, so the lookup pins down exactly one token even
// when several users have outstanding reset requests.
func (r *ResetTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*model.ResetToken, error) {
	token := &model.ResetToken{}
	query := `SELECT id, user_id, token_hash, expires_at, created_at FROM reset_tokens WHERE token_hash = $1`
	err := r.DB.QueryRowContext(ctx, query, tokenHash).
		Scan(&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get reset token by hash query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// DeleteByID removes a consumed token so it can never be redeemed twice.
func (r *ResetTokenRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM reset_tokens WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Log.WithField("token_id", id).WithError(err).Error("Failed to execute delete reset token query")
		return err
	}
	return nil
}

// DeleteExpired purges tokens past their expiry. Redemption already rejects
// expired tokens; this only keeps the table from growing unbounded.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM reset_tokens WHERE expires_at <= now()`
	result, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete expired reset tokens query")
		return 0, err
	}
	return result.RowsAffected()
}
