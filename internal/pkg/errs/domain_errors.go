package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNotListed = errors.New("room not listed")

	// Hotel errors
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrHotelAlreadyExists = errors.New("hotel already registered for owner")

	// Booking errors
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidGuestCount = errors.New("invalid guest count")
	ErrRoomUnavailable   = errors.New("room unavailable for the requested dates")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotPending = errors.New("booking is not pending")

	// Payment errors
	ErrUnauthorized     = errors.New("booking belongs to another user")
	ErrAlreadyPaid      = errors.New("booking already paid")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrPaymentGateway   = errors.New("payment gateway request failed")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Operation errors
	ErrTransientStore          = errors.New("transient store error")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
