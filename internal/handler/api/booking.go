package api

import (
	"errors"
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	paymentCommands commands.PaymentCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	paymentCommands commands.PaymentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		paymentCommands: paymentCommands,
		bookingQueries:  bookingQueries,
	}
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.MessageResponse{
			Success: false, Message: "Invalid request format",
		})
		return
	}

	checkIn, checkOut, err := reqdto.ParseDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.MessageResponse{
			Success: false, Message: "Invalid date format",
		})
		return
	}

	available, err := h.bookingCommands.CheckAvailability(c.Request.Context(), req.RoomID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, resdto.MessageResponse{
				Success: false, Message: "Check-out must be after check-in",
			})
		case errors.Is(err, errs.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, resdto.MessageResponse{
				Success: false, Message: "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
				Success: false, Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Success: true, IsAvailable: available})
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
			Success: false, Message: "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.MessageResponse{
			Success: false, Message: "Invalid request format",
		})
		return
	}

	checkIn, checkOut, err := reqdto.ParseDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.MessageResponse{
			Success: false, Message: "Invalid date format",
		})
		return
	}

	bookingID, err := h.bookingCommands.CreateBooking(c.Request.Context(), userID, commands.CreateBookingParams{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	})
	if err != nil {
		switch {
		// Losing the room to a concurrent booking is an expected outcome,
		// not a protocol error, so it reports success=false at 200.
		case errors.Is(err, errs.ErrRoomUnavailable):
			c.JSON(http.StatusOK, resdto.MessageResponse{
				Success: false, Message: "Room is not available for the selected dates",
			})
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, resdto.MessageResponse{
				Success: false, Message: "Check-out must be after check-in",
			})
		case errors.Is(err, errs.ErrInvalidGuestCount):
			c.JSON(http.StatusBadRequest, resdto.MessageResponse{
				Success: false, Message: "Guest count must be at least 1",
			})
		case errors.Is(err, errs.ErrRoomNotFound), errors.Is(err, errs.ErrRoomNotListed):
			c.JSON(http.StatusNotFound, resdto.MessageResponse{
				Success: false, Message: "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
				Success: false, Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.BookingCreatedResponse{
		Success:   true,
		Message:   "Booking created",
		BookingID: bookingID,
	})
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
			Success: false, Message: "Internal server error",
		})
		return
	}

	bookings, err := h.bookingQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
			Success: false, Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.UserBookingsResponse{
		Success:  true,
		Bookings: resdto.FromBookingViews(bookings),
	})
}

func (h *BookingHandler) GetHotelDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
			Success: false, Message: "Internal server error",
		})
		return
	}

	dashboard, err := h.bookingQueries.DashboardByOwner(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, resdto.MessageResponse{
				Success: false, Message: "No hotel registered for this account",
			})
		default:
			c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
				Success: false, Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDashboard(dashboard))
}

func (h *BookingHandler) Pay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
			Success: false, Message: "Internal server error",
		})
		return
	}

	var req reqdto.PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.MessageResponse{
			Success: false, Message: "Invalid request format",
		})
		return
	}

	url, err := h.paymentCommands.CreateSession(c.Request.Context(), userID, req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, resdto.MessageResponse{
				Success: false, Message: "Booking not found",
			})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusForbidden, resdto.MessageResponse{
				Success: false, Message: "Booking belongs to another user",
			})
		case errors.Is(err, errs.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, resdto.MessageResponse{
				Success: false, Message: "Booking is already paid",
			})
		case errors.Is(err, errs.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, resdto.MessageResponse{
				Success: false, Message: "Payment processor is unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, resdto.MessageResponse{
				Success: false, Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentSessionResponse{Success: true, URL: url})
}

// PaymentWebhook is unauthenticated; trust comes from the signature over
// the raw body, verified before anything is parsed.
func (h *BookingHandler) PaymentWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature header"})
		return
	}

	if err := h.paymentCommands.HandleConfirmation(c.Request.Context(), payload, signature); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
