package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID           uuid.UUID  `json:"id"`
	UserID       string     `json:"user_id"`
	RoomID       uuid.UUID  `json:"room_id"`
	RoomType     string     `json:"room_type"`
	HotelID      uuid.UUID  `json:"hotel_id"`
	HotelName    string     `json:"hotel_name"`
	HotelAddress string     `json:"hotel_address"`
	CheckIn      time.Time  `json:"check_in"`
	CheckOut     time.Time  `json:"check_out"`
	Guests       int        `json:"guests"`
	TotalCents   int64      `json:"total_cents"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	IsPaid       bool       `json:"is_paid"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HotelDashboard aggregates are folded from the listed bookings on every
// call; nothing is cached or materialized.
type HotelDashboard struct {
	TotalBookings     int            `json:"total_bookings"`
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	Bookings          []*BookingView `json:"bookings"`
}

type RoomView struct {
	ID                 uuid.UUID `json:"id"`
	HotelID            uuid.UUID `json:"hotel_id"`
	HotelName          string    `json:"hotel_name"`
	HotelCity          string    `json:"hotel_city"`
	RoomType           string    `json:"room_type"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	Amenities          []string  `json:"amenities"`
	Images             []string  `json:"images"`
	Listed             bool      `json:"listed"`
	CreatedAt          time.Time `json:"created_at"`
}

type UserView struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"display_name"`
	AvatarURL    string   `json:"avatar_url"`
	Role         string   `json:"role"`
	RecentCities []string `json:"recent_searched_cities"`
}
