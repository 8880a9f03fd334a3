package readstore

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const hasOverlapSQL = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE room_id = $1
      AND status <> 'cancelled'
      AND check_in < $3
      AND check_out > $2
)`

// HasOverlapping implements the half-open conflict test: an existing
// booking conflicts iff existing.check_in < $checkOut AND
// existing.check_out > $checkIn.
func (r *BookingReadStore) HasOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	var conflict bool
	err := r.db.QueryRow(ctx, hasOverlapSQL, roomID, checkIn, checkOut).Scan(&conflict)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return conflict, nil
}

const bookingSnapshotSQL = `
SELECT id, user_id, room_id, hotel_id, check_in, check_out,
       guests, total_cents, currency, status, paid_at
FROM bookings
WHERE id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID, &snap.UserID, &snap.RoomID, &snap.HotelID,
		&snap.CheckIn, &snap.CheckOut, &snap.Guests,
		&snap.TotalCents, &snap.Currency, &snap.Status, &snap.PaidAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &snap, nil
}

const bookingViewSQL = `
SELECT b.id, b.user_id, b.room_id, r.room_type,
       b.hotel_id, h.name, h.address,
       b.check_in, b.check_out, b.guests,
       b.total_cents, b.currency, b.status, b.paid_at, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN hotels h ON h.id = b.hotel_id
`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID string) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewSQL+`WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user ID", err)
	}
	defer rows.Close()

	return scanBookingViews(rows)
}

// FindByHotelOwner returns KindNotFound when the owner has no hotel, so the
// query layer can distinguish "no hotel" from "no bookings".
func (r *BookingReadStore) FindByHotelOwner(ctx context.Context, ownerID string) ([]*queries.BookingView, error) {
	var hotelID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM hotels WHERE owner_id = $1`, ownerID).Scan(&hotelID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("hotel not found for owner", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hotel by owner", err)
	}

	rows, err := r.db.Query(ctx, bookingViewSQL+`WHERE b.hotel_id = $1 ORDER BY b.created_at DESC`, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by hotel", err)
	}
	defer rows.Close()

	return scanBookingViews(rows)
}

func scanBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	views := []*queries.BookingView{}
	for rows.Next() {
		var v queries.BookingView
		err := rows.Scan(
			&v.ID, &v.UserID, &v.RoomID, &v.RoomType,
			&v.HotelID, &v.HotelName, &v.HotelAddress,
			&v.CheckIn, &v.CheckOut, &v.Guests,
			&v.TotalCents, &v.Currency, &v.Status, &v.PaidAt, &v.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		v.IsPaid = v.PaidAt != nil || v.Status == booking.StatusConfirmed.String()
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}
	return views, nil
}
