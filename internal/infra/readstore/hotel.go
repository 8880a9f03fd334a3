package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type HotelReadStore struct {
	db db.DBTX
}

func NewHotelReadStore(dbtx db.DBTX) *HotelReadStore {
	return &HotelReadStore{db: dbtx}
}

const hotelByOwnerSQL = `
SELECT id, owner_id, name, address, city, contact
FROM hotels
WHERE owner_id = $1`

func (r *HotelReadStore) FindByOwner(ctx context.Context, ownerID string) (*shared.HotelSnapshot, error) {
	var snap shared.HotelSnapshot
	err := r.db.QueryRow(ctx, hotelByOwnerSQL, ownerID).Scan(
		&snap.ID, &snap.OwnerID, &snap.Name, &snap.Address, &snap.City, &snap.Contact,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("hotel not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hotel by owner", err)
	}
	return &snap, nil
}
