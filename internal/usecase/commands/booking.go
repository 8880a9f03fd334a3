package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type BookingCommands interface {
	// CheckAvailability is a pure read; the authoritative check reruns
	// inside CreateBooking's transaction.
	CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	CreateBooking(ctx context.Context, userID string, params CreateBookingParams) (uuid.UUID, error)
	CancelBooking(ctx context.Context, userID string, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	currency string
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		clock:    clk,
		currency: cfg.Currency,
	}
}

func (c *bookingCommandsImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	stay, err := booking.NewStayRange(checkIn, checkOut)
	if err != nil {
		return false, errs.ErrInvalidRange
	}

	reads := c.uow.CommandReads()

	roomSnap, err := reads.RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.ErrRoomNotFound
		}
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !roomSnap.Listed {
		return false, nil
	}

	conflict, err := reads.HasOverlappingBooking(ctx, roomID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return !conflict, nil
}

// CreateBooking re-checks availability and inserts inside one transaction.
// The exclusion constraint on active bookings is the race authority: when
// two overlapping requests slip past the pre-check, the loser's insert
// fails with a conflict and surfaces as ErrRoomUnavailable, never as a
// silent retry-as-success.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, userID string, params CreateBookingParams) (uuid.UUID, error) {
	stay, err := booking.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidRange
	}
	guests, err := booking.NewGuestCount(params.Guests)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidGuestCount
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomSnap, err := tx.Reads().RoomByID(ctx, params.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRoomNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !roomSnap.Listed {
			return errs.ErrRoomNotListed
		}

		conflict, err := tx.Reads().HasOverlappingBooking(ctx, params.RoomID, stay.CheckIn(), stay.CheckOut())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if conflict {
			return errs.ErrRoomUnavailable
		}

		price, err := booking.NewMoney(roomSnap.PricePerNightCents)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		entity, err := booking.NewBooking(
			booking.RoomSpec{
				ID:            roomSnap.ID,
				HotelID:       roomSnap.HotelID,
				PricePerNight: price,
				Listed:        roomSnap.Listed,
			},
			userID,
			stay,
			guests,
			c.currency,
			c.clock.Now(),
		)
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrRoomUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		bookingID = id

		// Outbox row in the same transaction; actual delivery is
		// fire-and-forget and must never fail the booking.
		if err := c.enqueueNotification(ctx, tx, "booking_confirmation", entity); err != nil {
			slog.Warn("failed to enqueue booking confirmation", "booking_id", id, "error", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bookingID, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, userID string, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.UserID != userID {
			return errs.ErrUnauthorized
		}

		changed, err := tx.Bookings().Cancel(ctx, tx.DB(), bookingID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !changed {
			return errs.ErrBookingNotPending
		}
		return nil
	})
}

func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":  b.ID(),
		"user_id":     b.UserID(),
		"hotel_id":    b.HotelID(),
		"check_in":    b.Stay().CheckIn(),
		"check_out":   b.Stay().CheckOut(),
		"total_cents": b.Total().Cents(),
		"currency":    b.Currency(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, c.clock.Now())
}
