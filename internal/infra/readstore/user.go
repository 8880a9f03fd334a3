package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userByIDSQL = `
SELECT id, email, display_name, avatar_url, role, recent_cities
FROM users
WHERE id = $1`

func (r *UserReadStore) FindSnapshotByID(ctx context.Context, id string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, userByIDSQL, id).Scan(
		&snap.ID, &snap.Email, &snap.DisplayName, &snap.AvatarURL, &snap.Role, &snap.RecentCities,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id string) (*queries.UserView, error) {
	snap, err := r.FindSnapshotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &queries.UserView{
		ID:           snap.ID,
		Email:        snap.Email,
		DisplayName:  snap.DisplayName,
		AvatarURL:    snap.AvatarURL,
		Role:         snap.Role,
		RecentCities: snap.RecentCities,
	}, nil
}
