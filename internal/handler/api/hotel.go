package api

import (
	"errors"
	"net/http"

	"stayhub/internal/domain/hotel"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	hotelCommands commands.HotelCommands
}

func NewHotelHandler(hotelCommands commands.HotelCommands) *HotelHandler {
	return &HotelHandler{
		hotelCommands: hotelCommands,
	}
}

func (h *HotelHandler) Register(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.RegisterHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	hotelID, err := h.hotelCommands.Register(c.Request.Context(), ownerID, commands.RegisterHotelParams{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Contact: req.Contact,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrHotelAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "A hotel is already registered for this account"})
		case errors.Is(err, hotel.ErrEmptyName),
			errors.Is(err, hotel.ErrEmptyAddress),
			errors.Is(err, hotel.ErrEmptyCity),
			errors.Is(err, hotel.ErrEmptyContact):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": hotelID})
}
