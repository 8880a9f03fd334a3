package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Hotels() HotelRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-side lookups commands validate against. They
// run on the caller's DBTX, so inside Within they observe the transaction.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	HotelByOwner(ctx context.Context, ownerID string) (*HotelSnapshot, error)
	UserByID(ctx context.Context, id string) (*UserSnapshot, error)
	// HasOverlappingBooking reports whether any non-cancelled booking for the
	// room intersects [checkIn, checkOut) under half-open semantics.
	HasOverlappingBooking(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// ConfirmPayment is a compare-and-set: the transition fires only from
	// status=pending. Returns false when the row was already confirmed (or
	// cancelled), which callers treat as a replay no-op.
	ConfirmPayment(ctx context.Context, tx db.DBTX, id uuid.UUID, paidAt time.Time) (bool, error)
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *room.Room) (uuid.UUID, error)
	SetListed(ctx context.Context, tx db.DBTX, id uuid.UUID, listed bool, at time.Time) error
	UpdatePrice(ctx context.Context, tx db.DBTX, id uuid.UUID, pricePerNightCents int64, at time.Time) error
	UpdateAmenities(ctx context.Context, tx db.DBTX, id uuid.UUID, amenities []string, at time.Time) error
}

type HotelRepository interface {
	Create(ctx context.Context, tx db.DBTX, h *hotel.Hotel) (uuid.UUID, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, tx db.DBTX, u UserRecord) error
	Delete(ctx context.Context, tx db.DBTX, id string) error
	SetRole(ctx context.Context, tx db.DBTX, id, role string, at time.Time) error
	SetRecentCities(ctx context.Context, tx db.DBTX, id string, cities []string, at time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
