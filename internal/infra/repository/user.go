package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/shared"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const upsertUserSQL = `
INSERT INTO users (id, email, display_name, avatar_url, role, recent_cities, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, '{}', $6, $6)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    avatar_url = EXCLUDED.avatar_url,
    updated_at = EXCLUDED.updated_at`

// Upsert mirrors an identity-provider account. Role and recent cities are
// local state and deliberately not overwritten on update.
func (r *UserRepository) Upsert(ctx context.Context, tx db.DBTX, u shared.UserRecord) error {
	_, err := tx.Exec(ctx, upsertUserSQL,
		u.ID, u.Email, u.DisplayName, u.AvatarURL, u.Role, u.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert user", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx db.DBTX, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, tx db.DBTX, id, role string, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE id = $1`,
		id, role, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SetRecentCities(ctx context.Context, tx db.DBTX, id string, cities []string, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET recent_cities = $2, updated_at = $3 WHERE id = $1`,
		id, cities, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update recent cities", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
