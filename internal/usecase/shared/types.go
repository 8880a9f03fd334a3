package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type RoomSnapshot struct {
	ID                 uuid.UUID
	HotelID            uuid.UUID
	RoomType           string
	PricePerNightCents int64
	Listed             bool
}

type BookingSnapshot struct {
	ID         uuid.UUID
	UserID     string
	RoomID     uuid.UUID
	HotelID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalCents int64
	Currency   string
	Status     string
	PaidAt     *time.Time
}

type HotelSnapshot struct {
	ID      uuid.UUID
	OwnerID string
	Name    string
	Address string
	City    string
	Contact string
}

type UserSnapshot struct {
	ID           string
	Email        string
	DisplayName  string
	AvatarURL    string
	Role         string
	RecentCities []string
}

// UserRecord is the upsert payload mirrored from the identity provider.
type UserRecord struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   string
	Role        string
	UpdatedAt   time.Time
}
