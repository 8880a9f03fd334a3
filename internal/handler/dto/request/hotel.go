package request

type RegisterHotelRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}
