package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

// Booking surface responses always carry a success flag plus either a
// message or a payload; business failures are reported with success=false
// rather than an error envelope.

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AvailabilityResponse struct {
	Success     bool `json:"success"`
	IsAvailable bool `json:"isAvailable"`
}

type BookingCreatedResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	BookingID uuid.UUID `json:"bookingId"`
}

type UserBookingsResponse struct {
	Success  bool               `json:"success"`
	Bookings []*BookingResponse `json:"bookings"`
}

type DashboardResponse struct {
	Success       bool          `json:"success"`
	DashboardData DashboardData `json:"dashboardData"`
}

type DashboardData struct {
	TotalBookings int                `json:"totalBookings"`
	TotalRevenue  int64              `json:"totalRevenue"`
	Bookings      []*BookingResponse `json:"bookings"`
}

type PaymentSessionResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"roomId"`
	RoomType     string     `json:"roomType"`
	HotelName    string     `json:"hotelName"`
	HotelAddress string     `json:"hotelAddress"`
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     time.Time  `json:"checkOut"`
	Guests       int        `json:"guests"`
	TotalCents   int64      `json:"totalCents"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	IsPaid       bool       `json:"isPaid"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           v.ID,
		RoomID:       v.RoomID,
		RoomType:     v.RoomType,
		HotelName:    v.HotelName,
		HotelAddress: v.HotelAddress,
		CheckIn:      v.CheckIn,
		CheckOut:     v.CheckOut,
		Guests:       v.Guests,
		TotalCents:   v.TotalCents,
		Currency:     v.Currency,
		Status:       v.Status,
		IsPaid:       v.IsPaid,
		PaidAt:       v.PaidAt,
		CreatedAt:    v.CreatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}

func FromDashboard(d *queries.HotelDashboard) DashboardResponse {
	return DashboardResponse{
		Success: true,
		DashboardData: DashboardData{
			TotalBookings: d.TotalBookings,
			TotalRevenue:  d.TotalRevenueCents,
			Bookings:      FromBookingViews(d.Bookings),
		},
	}
}
