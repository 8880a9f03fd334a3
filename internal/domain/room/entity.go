package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomType = errors.New("room type cannot be empty")
	ErrInvalidPrice  = errors.New("price per night must be positive")
	ErrEmptyAmenity  = errors.New("amenity cannot be empty")
	ErrTooManyImages = errors.New("too many images")
)

const MaxImages = 4

// Room belongs to exactly one hotel. Rooms are never deleted; unlisting
// hides them from the public catalogue while keeping the booking history.
type Room struct {
	id                 uuid.UUID
	hotelID            uuid.UUID
	roomType           string
	pricePerNightCents int64
	amenities          []string
	images             []string
	listed             bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewRoom(
	hotelID uuid.UUID,
	roomType string,
	pricePerNightCents int64,
	amenities []string,
	images []string,
	now time.Time,
) (*Room, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return nil, ErrEmptyRoomType
	}
	if pricePerNightCents <= 0 {
		return nil, ErrInvalidPrice
	}
	cleaned := make([]string, 0, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, ErrEmptyAmenity
		}
		cleaned = append(cleaned, a)
	}
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}

	return &Room{
		id:                 uuid.New(),
		hotelID:            hotelID,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		amenities:          cleaned,
		images:             images,
		listed:             true,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructRoom(
	id, hotelID uuid.UUID,
	roomType string,
	pricePerNightCents int64,
	amenities, images []string,
	listed bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:                 id,
		hotelID:            hotelID,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		amenities:          amenities,
		images:             images,
		listed:             listed,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (r *Room) ToggleListing(now time.Time) {
	r.listed = !r.listed
	r.updatedAt = now
}

func (r *Room) ChangePrice(pricePerNightCents int64, now time.Time) error {
	if pricePerNightCents <= 0 {
		return ErrInvalidPrice
	}
	r.pricePerNightCents = pricePerNightCents
	r.updatedAt = now
	return nil
}

func (r *Room) UpdateAmenities(amenities []string, now time.Time) error {
	cleaned := make([]string, 0, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" {
			return ErrEmptyAmenity
		}
		cleaned = append(cleaned, a)
	}
	r.amenities = cleaned
	r.updatedAt = now
	return nil
}

func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) HotelID() uuid.UUID         { return r.hotelID }
func (r *Room) RoomType() string           { return r.roomType }
func (r *Room) PricePerNightCents() int64  { return r.pricePerNightCents }
func (r *Room) Amenities() []string        { return r.amenities }
func (r *Room) Images() []string           { return r.images }
func (r *Room) Listed() bool               { return r.listed }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }
