package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, user_id, room_id, hotel_id, check_in, check_out,
    guests, total_cents, currency, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING id`

// Create relies on the active-bookings exclusion constraint: an overlapping
// insert for the same room fails with SQLSTATE 23P01, surfaced as
// KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.UserID(),
		b.RoomID(),
		b.HotelID(),
		b.Stay().CheckIn(),
		b.Stay().CheckOut(),
		b.Guests().Value(),
		b.Total().Cents(),
		b.Currency(),
		b.Status().String(),
		b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const confirmPaymentSQL = `
UPDATE bookings
SET status = 'confirmed', paid_at = $2, updated_at = $2
WHERE id = $1 AND status = 'pending'`

// ConfirmPayment is the compare-and-set for webhook idempotency: zero rows
// affected means the booking already left pending (replayed delivery).
func (r *BookingRepository) ConfirmPayment(ctx context.Context, tx db.DBTX, id uuid.UUID, paidAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, confirmPaymentSQL, id, paidAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm booking payment", err)
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
		return false, nil
	}
	return true, nil
}

const cancelBookingSQL = `
UPDATE bookings
SET status = 'cancelled', updated_at = $2
WHERE id = $1 AND status = 'pending'`

func (r *BookingRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, cancelBookingSQL, id, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) exists(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking existence", err)
	}
	return exists, nil
}
