package request

import (
	"time"

	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CheckAvailabilityRequest struct {
	RoomID       uuid.UUID `json:"roomId" binding:"required"`
	CheckInDate  string    `json:"checkInDate" binding:"required"`
	CheckOutDate string    `json:"checkOutDate" binding:"required"`
}

type CreateBookingRequest struct {
	RoomID       uuid.UUID `json:"roomId" binding:"required"`
	CheckInDate  string    `json:"checkInDate" binding:"required"`
	CheckOutDate string    `json:"checkOutDate" binding:"required"`
	Guests       int       `json:"guests" binding:"required"`
}

type PayBookingRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

// ParseDates accepts calendar dates ("2024-01-10") and interprets them as
// UTC midnight. Full RFC 3339 timestamps are tolerated for compatibility.
func ParseDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, errs.ErrInvalidRange
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, errs.ErrInvalidRange
	}
	return in, out, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
