package commands

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutParams carries everything the processor needs to build a session.
// Amount is already in minor units; Metadata ties the session back to the
// booking for webhook reconciliation.
type CheckoutParams struct {
	BookingID   uuid.UUID
	UserID      string
	AmountCents int64
	Currency    string
	ProductName string
	Description string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// ConfirmationEvent is a signature-verified payment notification. Events
// with types this system does not handle are still returned so the caller
// can acknowledge and ignore them.
type ConfirmationEvent struct {
	Type      string
	SessionID string
	BookingID uuid.UUID
	UserID    string
}

const EventCheckoutCompleted = "checkout.session.completed"

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// VerifyEvent validates the signature header over the raw payload before
	// parsing anything. An invalid signature fails the whole request.
	VerifyEvent(payload []byte, signatureHeader string) (*ConfirmationEvent, error)
}

// IdentityEvent is a verified account notification from the identity
// provider.
type IdentityEvent struct {
	Type        string
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string
}

const (
	IdentityUserCreated = "user.created"
	IdentityUserUpdated = "user.updated"
	IdentityUserDeleted = "user.deleted"
)

type IdentityHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

type IdentityVerifier interface {
	VerifyEvent(payload []byte, headers IdentityHeaders) (*IdentityEvent, error)
}
