package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const createRoomSQL = `
INSERT INTO rooms (
    id, hotel_id, room_type, price_per_night_cents,
    amenities, images, listed, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`

func (r *RoomRepository) Create(ctx context.Context, tx db.DBTX, entity *room.Room) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createRoomSQL,
		entity.ID(),
		entity.HotelID(),
		entity.RoomType(),
		entity.PricePerNightCents(),
		entity.Amenities(),
		entity.Images(),
		entity.Listed(),
		entity.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}
	return id, nil
}

func (r *RoomRepository) SetListed(ctx context.Context, tx db.DBTX, id uuid.UUID, listed bool, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE rooms SET listed = $2, updated_at = $3 WHERE id = $1`,
		id, listed, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) UpdatePrice(ctx context.Context, tx db.DBTX, id uuid.UUID, pricePerNightCents int64, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE rooms SET price_per_night_cents = $2, updated_at = $3 WHERE id = $1`,
		id, pricePerNightCents, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) UpdateAmenities(ctx context.Context, tx db.DBTX, id uuid.UUID, amenities []string, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE rooms SET amenities = $2, updated_at = $3 WHERE id = $1`,
		id, amenities, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room amenities", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}
