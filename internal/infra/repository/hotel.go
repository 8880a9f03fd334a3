package repository

import (
	"context"

	"stayhub/internal/domain/hotel"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type HotelRepository struct{}

func NewHotelRepository() *HotelRepository {
	return &HotelRepository{}
}

const createHotelSQL = `
INSERT INTO hotels (id, owner_id, name, address, city, contact, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING id`

func (r *HotelRepository) Create(ctx context.Context, tx db.DBTX, entity *hotel.Hotel) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createHotelSQL,
		entity.ID(),
		entity.OwnerID(),
		entity.Name(),
		entity.Address(),
		entity.City(),
		entity.Contact(),
		entity.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create hotel", err)
	}
	return id, nil
}
