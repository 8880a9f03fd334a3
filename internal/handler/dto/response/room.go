package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID                 uuid.UUID `json:"id"`
	HotelID            uuid.UUID `json:"hotelId"`
	HotelName          string    `json:"hotelName"`
	HotelCity          string    `json:"hotelCity"`
	RoomType           string    `json:"roomType"`
	PricePerNightCents int64     `json:"pricePerNightCents"`
	Amenities          []string  `json:"amenities"`
	Images             []string  `json:"images"`
	Listed             bool      `json:"listed"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:                 v.ID,
		HotelID:            v.HotelID,
		HotelName:          v.HotelName,
		HotelCity:          v.HotelCity,
		RoomType:           v.RoomType,
		PricePerNightCents: v.PricePerNightCents,
		Amenities:          v.Amenities,
		Images:             v.Images,
		Listed:             v.Listed,
		CreatedAt:          v.CreatedAt,
	}
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomView(v)
	}
	return out
}
