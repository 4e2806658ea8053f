// file: repository/reset_token_repository_test.go

package repository

import (
	"context"
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newResetTokenRepo(t *testing.T) (*ResetTokenRepository, sqlmock.Sqlmock, func()) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	return NewResetTokenRepository(db), dbMock, func() { db.Close() }
}

func TestResetTokenRepository_Create(t *testing.T) {
	repo, dbMock, cleanup := newResetTokenRepo(t)
	defer cleanup()

	token := &model.ResetToken{
		ID:        "tok-1",
		UserID:    "user-1",
		TokenHash: "digest",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	now := time.Now()
	dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reset_tokens`)).
		WithArgs(token.ID, token.UserID, token.TokenHash, token.ExpiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	err := repo.Create(context.Background(), token)

	assert.NoError(t, err)
	assert.Equal(t, now, token.CreatedAt)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestResetTokenRepository_GetByTokenHash(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, dbMock, cleanup := newResetTokenRepo(t)
		defer cleanup()

		now := time.Now()
		dbMock.ExpectQuery(`SELECT .+ FROM reset_tokens WHERE token_hash`).
			WithArgs("digest").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}).
				AddRow("tok-1", "user-1", "digest", now.Add(time.Hour), now))

		token, err := repo.GetByTokenHash(context.Background(), "digest")

		assert.NoError(t, err)
		assert.Equal(t, "tok-1", token.ID)
		assert.Equal(t, "user-1", token.UserID)
	})

	t.Run("not found returns sql.ErrNoRows", func(t *testing.T) {
		repo, dbMock, cleanup := newResetTokenRepo(t)
		defer cleanup()

		dbMock.ExpectQuery(`SELECT .+ FROM reset_tokens WHERE token_hash`).
			WithArgs("missing-digest").
			WillReturnError(sql.ErrNoRows)

		token, err := repo.GetByTokenHash(context.Background(), "missing-digest")

		assert.Nil(t, token)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestResetTokenRepository_DeleteByID(t *testing.T) {
	repo, dbMock, cleanup := newResetTokenRepo(t)
	defer cleanup()

	dbMock.ExpectExec(`DELETE FROM reset_tokens WHERE id`).
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteByID(context.Background(), "tok-1")

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestResetTokenRepository_DeleteExpired(t *testing.T) {
	repo, dbMock, cleanup := newResetTokenRepo(t)
	defer cleanup()

	dbMock.ExpectExec(`DELETE FROM reset_tokens WHERE expires_at`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	purged, err := repo.DeleteExpired(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}
