package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	// CreateSession opens a processor checkout session for one unpaid
	// booking. It never mutates paid state; that only happens in
	// HandleConfirmation.
	CreateSession(ctx context.Context, userID string, bookingID uuid.UUID) (string, error)
	// HandleConfirmation processes a signed processor event. Replays and
	// unrecognized event types are acknowledged without side effects.
	HandleConfirmation(ctx context.Context, payload []byte, signatureHeader string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
	}
}

func (c *paymentCommandsImpl) CreateSession(ctx context.Context, userID string, bookingID uuid.UUID) (string, error) {
	reads := c.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrBookingNotFound
		}
		if infra.IsKind(err, infra.KindTransient) {
			return "", errs.Mark(err, errs.ErrTransientStore)
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.UserID != userID {
		return "", errs.ErrUnauthorized
	}
	if snap.PaidAt != nil || snap.Status == booking.StatusConfirmed.String() {
		return "", errs.ErrAlreadyPaid
	}

	roomSnap, err := reads.RoomByID(ctx, snap.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrRoomNotFound
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	session, err := c.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		BookingID:   snap.ID,
		UserID:      snap.UserID,
		AmountCents: snap.TotalCents,
		Currency:    snap.Currency,
		ProductName: fmt.Sprintf("Booking %s", snap.ID),
		Description: fmt.Sprintf("Room: %s, Check-in: %s, Check-out: %s",
			roomSnap.RoomType,
			snap.CheckIn.Format("2006-01-02"),
			snap.CheckOut.Format("2006-01-02"),
		),
	})
	if err != nil {
		return "", errs.Mark(err, errs.ErrPaymentGateway)
	}

	return session.URL, nil
}

func (c *paymentCommandsImpl) HandleConfirmation(ctx context.Context, payload []byte, signatureHeader string) error {
	// Signature first; nothing in the payload is trusted before this and
	// verification is never retried.
	event, err := c.gateway.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return errs.ErrInvalidSignature
	}

	if event.Type != EventCheckoutCompleted {
		// Acknowledged and ignored so the processor does not retry-storm.
		slog.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}
	if event.BookingID == uuid.Nil {
		slog.Warn("completed checkout event without booking metadata", "session_id", event.SessionID)
		return nil
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		confirmed, err := tx.Bookings().ConfirmPayment(ctx, tx.DB(), event.BookingID, c.clock.Now())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Unknown booking id in the metadata; acknowledge so the
				// processor stops redelivering.
				slog.Warn("payment confirmation for unknown booking", "booking_id", event.BookingID)
				return nil
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !confirmed {
			// Replay of an at-least-once delivery: paid stays paid and no
			// second notification goes out.
			slog.Info("duplicate payment confirmation ignored", "booking_id", event.BookingID)
			return nil
		}

		payload, err := json.Marshal(map[string]any{
			"booking_id": event.BookingID,
			"user_id":    event.UserID,
			"session_id": event.SessionID,
		})
		if err != nil {
			slog.Warn("failed to marshal payment notification", "booking_id", event.BookingID, "error", err)
			return nil
		}
		// A failed notification must not un-record charged money.
		if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", "payment_confirmation", payload, c.clock.Now()); err != nil {
			slog.Warn("failed to enqueue payment confirmation", "booking_id", event.BookingID, "error", err)
		}
		return nil
	})
}
