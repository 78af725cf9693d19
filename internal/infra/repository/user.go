package repository

import (
	"context"

	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, role, display_name, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.DisplayName(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert user", err, infra.ClassifyPgError(err))
	}
	return id, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
