package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

const roomSnapshotSQL = `
SELECT id, hotel_id, room_type, price_per_night_cents, listed
FROM rooms
WHERE id = $1`

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var snap shared.RoomSnapshot
	err := r.db.QueryRow(ctx, roomSnapshotSQL, id).Scan(
		&snap.ID, &snap.HotelID, &snap.RoomType, &snap.PricePerNightCents, &snap.Listed,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return &snap, nil
}

const roomViewSQL = `
SELECT r.id, r.hotel_id, h.name, h.city, r.room_type,
       r.price_per_night_cents, r.amenities, r.images, r.listed, r.created_at
FROM rooms r
JOIN hotels h ON h.id = r.hotel_id
`

func (r *RoomReadStore) FindListed(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, roomViewSQL+`WHERE r.listed ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find listed rooms", err)
	}
	defer rows.Close()

	return scanRoomViews(rows)
}

func (r *RoomReadStore) FindByHotelOwner(ctx context.Context, ownerID string) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, roomViewSQL+`WHERE h.owner_id = $1 ORDER BY r.created_at DESC`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find rooms by owner", err)
	}
	defer rows.Close()

	return scanRoomViews(rows)
}

func scanRoomViews(rows pgx.Rows) ([]*queries.RoomView, error) {
	views := []*queries.RoomView{}
	for rows.Next() {
		var v queries.RoomView
		err := rows.Scan(
			&v.ID, &v.HotelID, &v.HotelName, &v.HotelCity, &v.RoomType,
			&v.PricePerNightCents, &v.Amenities, &v.Images, &v.Listed, &v.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room views", err)
	}
	return views, nil
}
