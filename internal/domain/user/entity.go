package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyID    = errors.New("user id cannot be empty")
	ErrEmptyEmail = errors.New("user email cannot be empty")
	ErrEmptyCity  = errors.New("city cannot be empty")
)

// MaxRecentCities bounds the recently-searched ring; the oldest entry is
// evicted on overflow.
const MaxRecentCities = 3

// User mirrors an identity-provider account. The id is the provider's
// subject id, so no credentials are ever stored here.
type User struct {
	id           string
	email        string
	displayName  string
	avatarURL    string
	role         Role
	recentCities []string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(id, email, displayName, avatarURL string, now time.Time) (*User, error) {
	id = strings.TrimSpace(id)
	email = strings.TrimSpace(email)
	if id == "" {
		return nil, ErrEmptyID
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}

	return &User{
		id:          id,
		email:       email,
		displayName: strings.TrimSpace(displayName),
		avatarURL:   avatarURL,
		role:        RoleGuest,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructUser(id, email, displayName, avatarURL string, role Role, recentCities []string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		displayName:  displayName,
		avatarURL:    avatarURL,
		role:         role,
		recentCities: recentCities,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) UpdateProfile(email, displayName, avatarURL string, now time.Time) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	u.email = email
	u.displayName = strings.TrimSpace(displayName)
	u.avatarURL = avatarURL
	u.updatedAt = now
	return nil
}

// RecordSearchedCity appends to the bounded ring, evicting the oldest entry
// once MaxRecentCities is reached.
func (u *User) RecordSearchedCity(city string, now time.Time) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyCity
	}
	if len(u.recentCities) >= MaxRecentCities {
		u.recentCities = u.recentCities[1:]
	}
	u.recentCities = append(u.recentCities, city)
	u.updatedAt = now
	return nil
}

func (u *User) PromoteToHotelOwner(now time.Time) {
	u.role = RoleHotelOwner
	u.updatedAt = now
}

func (u *User) ID() string             { return u.id }
func (u *User) Email() string          { return u.email }
func (u *User) DisplayName() string    { return u.displayName }
func (u *User) AvatarURL() string      { return u.avatarURL }
func (u *User) Role() Role             { return u.role }
func (u *User) RecentCities() []string { return u.recentCities }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
