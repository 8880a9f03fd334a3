package hotel

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("hotel name cannot be empty")
	ErrEmptyAddress = errors.New("hotel address cannot be empty")
	ErrEmptyCity    = errors.New("hotel city cannot be empty")
	ErrEmptyContact = errors.New("hotel contact cannot be empty")
)

// Hotel has exactly one owner; registration promotes that user to the
// hotelOwner role.
type Hotel struct {
	id        uuid.UUID
	ownerID   string
	name      string
	address   string
	city      string
	contact   string
	createdAt time.Time
	updatedAt time.Time
}

func NewHotel(ownerID, name, address, city, contact string, now time.Time) (*Hotel, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	contact = strings.TrimSpace(contact)

	switch {
	case name == "":
		return nil, ErrEmptyName
	case address == "":
		return nil, ErrEmptyAddress
	case city == "":
		return nil, ErrEmptyCity
	case contact == "":
		return nil, ErrEmptyContact
	}

	return &Hotel{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      name,
		address:   address,
		city:      city,
		contact:   contact,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructHotel(id uuid.UUID, ownerID, name, address, city, contact string, createdAt, updatedAt time.Time) *Hotel {
	return &Hotel{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		address:   address,
		city:      city,
		contact:   contact,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (h *Hotel) ID() uuid.UUID        { return h.id }
func (h *Hotel) OwnerID() string      { return h.ownerID }
func (h *Hotel) Name() string         { return h.name }
func (h *Hotel) Address() string      { return h.address }
func (h *Hotel) City() string         { return h.city }
func (h *Hotel) Contact() string      { return h.contact }
func (h *Hotel) CreatedAt() time.Time { return h.createdAt }
func (h *Hotel) UpdatedAt() time.Time { return h.updatedAt }
