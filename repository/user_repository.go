package repository

import (
	"context"
	"database/sql"
	"errors"
	"go-auth-api/model"

	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when an insert violates the unique email
// constraint.
var ErrDuplicateEmail = errors.New("email already in use")

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	SetRefreshTokenHash(ctx context.Context, userID, tokenHash string) error
	RotateRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error)
	ClearRefreshTokenHash(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, userID, passwordHash string) error
	UpdateUserRole(ctx context.Context, userID, newRole string) (bool, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
}

// UserRepository implements IUserRepository on top of database/sql.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, password, role, COALESCE(refresh_token_hash, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.RefreshTokenHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password, role) VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.Password, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
			&user.RefreshTokenHash, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetRefreshTokenHash stores a new refresh-token digest unconditionally.
// Used on login and signup, where any previous session is simply replaced.
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, userID, tokenHash string) error {
	query := `UPDATE users SET refresh_token_hash = $1, updated_at = now() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, tokenHash, userID)
	return err
}

// RotateRefreshTokenHash swaps the stored digest only if it still equals
// oldHash. A false return means the row was rotated (or cleared) by a
// concurrent request and the presented token must be rejected.
func (r *UserRepository) RotateRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error) {
	query := `UPDATE users SET refresh_token_hash = $1, updated_at = now() WHERE id = $2 AND refresh_token_hash = $3`
	result, err := r.DB.ExecContext(ctx, query, newHash, userID, oldHash)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *UserRepository) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, updated_at = now() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

// ResetPassword replaces the password digest and clears the refresh-token
// digest in one statement, so a password reset always invalidates any live
// session atomically.
func (r *UserRepository) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password = $1, refresh_token_hash = NULL, updated_at = now() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, passwordHash, userID)
	return err
}

func (r *UserRepository) UpdateUserRole(ctx context.Context, userID, newRole string) (bool, error) {
	query := `UPDATE users SET role = $1, updated_at = now() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, newRole, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
