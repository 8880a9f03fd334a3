package request

type CreateRoomRequest struct {
	RoomType           string   `json:"roomType" binding:"required"`
	PricePerNightCents int64    `json:"pricePerNightCents" binding:"required"`
	Amenities          []string `json:"amenities" binding:"required"`
	Images             []string `json:"images"`
}

type ChangePriceRequest struct {
	PricePerNightCents int64 `json:"pricePerNightCents" binding:"required"`
}

type UpdateAmenitiesRequest struct {
	Amenities []string `json:"amenities" binding:"required"`
}
