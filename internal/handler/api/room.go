package api

import (
	"errors"
	"net/http"

	"stayhub/internal/domain/room"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands commands.RoomCommands
	roomQueries  queries.RoomQueries
}

func NewRoomHandler(roomCommands commands.RoomCommands, roomQueries queries.RoomQueries) *RoomHandler {
	return &RoomHandler{
		roomCommands: roomCommands,
		roomQueries:  roomQueries,
	}
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomQueries.ListPublic(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

func (h *RoomHandler) ListOwnerRooms(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	rooms, err := h.roomQueries.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	roomID, err := h.roomCommands.CreateRoom(c.Request.Context(), ownerID, commands.CreateRoomParams{
		RoomType:           req.RoomType,
		PricePerNightCents: req.PricePerNightCents,
		Amenities:          req.Amenities,
		Images:             req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Register a hotel before adding rooms"})
		default:
			h.writeRoomCommandError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": roomID})
}

func (h *RoomHandler) ToggleListing(c *gin.Context) {
	ownerID, roomID, ok := h.ownerAndRoomID(c)
	if !ok {
		return
	}

	if err := h.roomCommands.ToggleListing(c.Request.Context(), ownerID, roomID); err != nil {
		h.writeRoomCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room listing toggled"})
}

func (h *RoomHandler) ChangePrice(c *gin.Context) {
	ownerID, roomID, ok := h.ownerAndRoomID(c)
	if !ok {
		return
	}

	var req reqdto.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.roomCommands.ChangePrice(c.Request.Context(), ownerID, roomID, req.PricePerNightCents); err != nil {
		h.writeRoomCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room price updated"})
}

func (h *RoomHandler) UpdateAmenities(c *gin.Context) {
	ownerID, roomID, ok := h.ownerAndRoomID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.roomCommands.UpdateAmenities(c.Request.Context(), ownerID, roomID, req.Amenities); err != nil {
		h.writeRoomCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room amenities updated"})
}

func (h *RoomHandler) ownerAndRoomID(c *gin.Context) (string, uuid.UUID, bool) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", uuid.Nil, false
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return "", uuid.Nil, false
	}
	return ownerID, roomID, true
}

func (h *RoomHandler) writeRoomCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Room belongs to another hotel"})
	case errors.Is(err, room.ErrEmptyRoomType),
		errors.Is(err, room.ErrInvalidPrice),
		errors.Is(err, room.ErrEmptyAmenity),
		errors.Is(err, room.ErrTooManyImages):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
