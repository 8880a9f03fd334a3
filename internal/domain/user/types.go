package user

type Role string

const (
	RoleGuest      Role = "guest"
	RoleHotelOwner Role = "hotelOwner"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHotelOwner:
		return true
	default:
		return false
	}
}
