package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount = errors.New("guest count must be positive")
	ErrRoomNotListed     = errors.New("room is not listed for booking")
	ErrAlreadyPaid       = errors.New("booking is already paid")
	ErrNotPending        = errors.New("booking is not pending")
	ErrMissingCurrency   = errors.New("currency is required")
)

// RoomSpec is the write-side room snapshot a booking is priced against.
type RoomSpec struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	PricePerNight Money
	Listed        bool
}

// Booking is an immutable reservation fact: dates, guests and the total
// price are frozen at creation. Only the payment/cancellation status may
// change afterwards.
type Booking struct {
	id        uuid.UUID
	userID    string
	roomID    uuid.UUID
	hotelID   uuid.UUID
	stay      StayRange
	guests    GuestCount
	total     Money
	currency  string
	status    Status
	paidAt    *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(
	room RoomSpec,
	userID string,
	stay StayRange,
	guests GuestCount,
	currency string,
	now time.Time,
) (*Booking, error) {
	if !room.Listed {
		return nil, ErrRoomNotListed
	}
	if currency == "" {
		return nil, ErrMissingCurrency
	}

	return &Booking{
		id:        uuid.New(),
		userID:    userID,
		roomID:    room.ID,
		hotelID:   room.HotelID,
		stay:      stay,
		guests:    guests,
		total:     room.PricePerNight.MultiplyNights(stay.Nights()),
		currency:  currency,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	userID string,
	roomID, hotelID uuid.UUID,
	stay StayRange,
	guests GuestCount,
	total Money,
	currency string,
	status Status,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		hotelID:   hotelID,
		stay:      stay,
		guests:    guests,
		total:     total,
		currency:  currency,
		status:    status,
		paidAt:    paidAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ConfirmPayment transitions pending -> confirmed. Paid is terminal: a
// second confirmation is rejected so webhook replays stay side-effect free.
func (b *Booking) ConfirmPayment(now time.Time) error {
	if b.IsPaid() {
		return ErrAlreadyPaid
	}
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusConfirmed
	b.paidAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusCanceled
	b.updatedAt = now
	return nil
}

func (b *Booking) IsPaid() bool {
	return b.paidAt != nil || b.status == StatusConfirmed
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() string       { return b.userID }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) HotelID() uuid.UUID   { return b.hotelID }
func (b *Booking) Stay() StayRange      { return b.stay }
func (b *Booking) Guests() GuestCount   { return b.guests }
func (b *Booking) Total() Money         { return b.total }
func (b *Booking) Currency() string     { return b.currency }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) PaidAt() *time.Time   { return b.paidAt }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
