//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID       uuid.UUID
	UserID   string
	RoomID   uuid.UUID
	HotelID  uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int

	PricePerNightCents int64
	Currency           string
	Listed             bool
	Status             string
	PaidAt             *time.Time
	CreatedAt          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC()
	return &BookingBuilder{
		ID:                 uuid.New(),
		UserID:             "user_2abc",
		RoomID:             uuid.New(),
		HotelID:            uuid.New(),
		CheckIn:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:           time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Guests:             2,
		PricePerNightCents: 10000,
		Currency:           "usd",
		Listed:             true,
		Status:             "pending",
		CreatedAt:          now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	stay, err := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := dombooking.NewGuestCount(b.Guests)
	if err != nil {
		return nil, err
	}
	price, err := dombooking.NewMoney(b.PricePerNightCents)
	if err != nil {
		return nil, err
	}

	room := dombooking.RoomSpec{
		ID:            b.RoomID,
		HotelID:       b.HotelID,
		PricePerNight: price,
		Listed:        b.Listed,
	}
	return dombooking.NewBooking(room, b.UserID, stay, guests, b.Currency, b.CreatedAt)
}

func (b *BookingBuilder) BuildRoomSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:                 b.RoomID,
		HotelID:            b.HotelID,
		RoomType:           "double",
		PricePerNightCents: b.PricePerNightCents,
		Listed:             b.Listed,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	nights := int64(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	return &shared.BookingSnapshot{
		ID:         b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		HotelID:    b.HotelID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalCents: b.PricePerNightCents * nights,
		Currency:   b.Currency,
		Status:     b.Status,
		PaidAt:     b.PaidAt,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	nights := int64(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	return &queries.BookingView{
		ID:           b.ID,
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		RoomType:     "double",
		HotelID:      b.HotelID,
		HotelName:    "Test Hotel",
		HotelAddress: "1 Test Street",
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Guests:       b.Guests,
		TotalCents:   b.PricePerNightCents * nights,
		Currency:     b.Currency,
		Status:       b.Status,
		IsPaid:       b.PaidAt != nil,
		PaidAt:       b.PaidAt,
		CreatedAt:    b.CreatedAt,
	}
}
