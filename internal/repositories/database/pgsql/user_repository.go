package pgsql

import (
	"context"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryWithTx {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryWithTx
var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	u.user_id, u.email, u.username, u.hashed_password, u.full_name, u.role, u.is_active,
	u.avatar_url, u.reset_token_hash, u.reset_token_expires, u.created_at, u.updated_at
FROM users u
`

func (r *PgxUserRepository) getUsers(ctx context.Context, filterQuery string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()
	modelUsers, err := collect[models.User](rows, "failed to collect user rows")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) getUser(ctx context.Context, filterQuery string, args ...any) (*domain.User, error) {
	users, err := r.getUsers(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &users[0], nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE LOWER(u.email) = LOWER($1)`, email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.username = $1`, username)
}

func (r *PgxUserRepository) FindUserByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.username = $1 OR LOWER(u.email) = LOWER($1) LIMIT 1`, usernameOrEmail)
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.reset_token_hash = $1`, tokenHash)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return r.getUsers(ctx, `ORDER BY u.created_at ASC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PgxUserRepository) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		WHERE u.is_active
		  AND (u.email ILIKE $1 OR u.username ILIKE $1 OR COALESCE(u.full_name, '') ILIKE $1)
		ORDER BY u.username
		LIMIT $2`
	return r.getUsers(ctx, query, "%"+q+"%", limit)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, email, username, hashed_password, full_name, role, is_active,
			avatar_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.Username, m.HashedPassword, m.FullName, m.Role, m.IsActive,
		m.AvatarURL, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "Email or username already registered", "invalid user reference", "failed to save user "+user.UserID)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET email = $1, username = $2, hashed_password = $3, full_name = $4, role = $5,
			is_active = $6, avatar_url = $7, updated_at = $8
		WHERE user_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Email, m.Username, m.HashedPassword, m.FullName, m.Role,
		m.IsActive, m.AvatarURL, m.UpdatedAt, m.UserID,
	)
	if err != nil {
		return translateWriteError(err, "Email or username already registered", "invalid user reference", "failed to update user "+user.UserID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expires time.Time) error {
	query := `UPDATE users SET reset_token_hash = $1, reset_token_expires = $2 WHERE user_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, tokenHash, expires, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store reset token", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearResetToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET reset_token_hash = NULL, reset_token_expires = NULL WHERE user_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return apperrors.NewAppError(500, "failed to clear reset token", err)
	}
	return nil
}

// DeleteUser removes the user. Rows still referencing the user as creator block the delete.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityUser, "users", "user_id", userID)
}
