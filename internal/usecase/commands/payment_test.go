//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"
	commandsmock "stayhub/tests/mock/commands"
	sharedmock "stayhub/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockUoW     *sharedmock.MockUnitOfWork
	mockTx      *sharedmock.MockTx
	mockReads   *sharedmock.MockCommandReads
	mockBooking *sharedmock.MockBookingRepository
	mockJobs    *sharedmock.MockNotificationRepository
	mockGateway *commandsmock.MockPaymentGateway
	clk         *clock.MockClock
	cmd         commands.PaymentCommands
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBooking = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockJobs = sharedmock.NewMockNotificationRepository(s.mockCtrl)
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	s.cmd = commands.NewPaymentCommands(s.mockUoW, s.mockGateway, s.clk)
}

func (s *PaymentCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentCommandsSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

func (s *PaymentCommandsTestSuite) expectWithin() {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
}

// ================================================================================
// CreateSession
// ================================================================================

func (s *PaymentCommandsTestSuite) TestCreateSession() {
	b := builder.NewBookingBuilder()
	snap := b.BuildSnapshot()
	roomSnap := b.BuildRoomSnapshot()

	s.Run("returns checkout URL for owner of an unpaid booking", func() {
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), snap.RoomID).Return(roomSnap, nil)
		s.mockGateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params commands.CheckoutParams) (*commands.CheckoutSession, error) {
				s.Equal(snap.ID, params.BookingID)
				s.Equal(snap.UserID, params.UserID)
				s.Equal(snap.TotalCents, params.AmountCents)
				s.Equal(snap.Currency, params.Currency)
				return &commands.CheckoutSession{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
			})

		url, err := s.cmd.CreateSession(context.Background(), snap.UserID, snap.ID)

		s.NoError(err)
		s.Equal("https://pay.example/cs_test_1", url)
	})

	s.Run("unknown booking fails before any ownership check", func() {
		missing := uuid.New()
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), missing).
			Return(nil, infra.RepositoryError{Kind: infra.KindNotFound})

		_, err := s.cmd.CreateSession(context.Background(), "someone_else", missing)

		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("caller who does not own the booking is rejected", func() {
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.cmd.CreateSession(context.Background(), "user_intruder", snap.ID)

		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("already paid booking never reaches the gateway", func() {
		paidAt := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		paid := b.With(func(b *builder.BookingBuilder) {
			b.Status = "confirmed"
			b.PaidAt = &paidAt
		}).BuildSnapshot()

		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), paid.ID).Return(paid, nil)

		_, err := s.cmd.CreateSession(context.Background(), paid.UserID, paid.ID)

		s.ErrorIs(err, errs.ErrAlreadyPaid)
	})

	s.Run("gateway failure surfaces as payment gateway error", func() {
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), snap.RoomID).Return(roomSnap, nil)
		s.mockGateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(nil, infra.RepositoryError{Kind: infra.KindDBFailure})

		_, err := s.cmd.CreateSession(context.Background(), snap.UserID, snap.ID)

		s.ErrorIs(err, errs.ErrPaymentGateway)
	})
}

// ================================================================================
// HandleConfirmation
// ================================================================================

func (s *PaymentCommandsTestSuite) TestHandleConfirmation() {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	sig := "t=1,v1=abc"
	bookingID := uuid.New()
	event := &commands.ConfirmationEvent{
		Type:      commands.EventCheckoutCompleted,
		SessionID: "cs_test_1",
		BookingID: bookingID,
		UserID:    "user_2abc",
	}

	s.Run("invalid signature stops everything before the payload is read", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).
			Return(nil, infra.RepositoryError{Kind: infra.KindDBFailure})

		err := s.cmd.HandleConfirmation(context.Background(), payload, sig)

		s.ErrorIs(err, errs.ErrInvalidSignature)
	})

	s.Run("confirms a pending booking and enqueues the notification", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(event, nil)
		s.expectWithin()
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), bookingID, s.clk.Now()).
			Return(true, nil)
		s.mockTx.EXPECT().Notifications().Return(s.mockJobs)
		s.mockJobs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), "email", "payment_confirmation", gomock.Any(), s.clk.Now()).
			Return(nil)

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})

	s.Run("replayed confirmation is acknowledged without a second notification", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(event, nil)
		s.expectWithin()
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), bookingID, s.clk.Now()).
			Return(false, nil)

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})

	s.Run("unrecognized event type is acknowledged untouched", func() {
		other := &commands.ConfirmationEvent{Type: "charge.refunded"}
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(other, nil)

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})

	s.Run("completed event missing booking metadata is acknowledged", func() {
		orphan := &commands.ConfirmationEvent{Type: commands.EventCheckoutCompleted, SessionID: "cs_orphan"}
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(orphan, nil)

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})

	s.Run("unknown booking id in metadata is acknowledged", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(event, nil)
		s.expectWithin()
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), bookingID, s.clk.Now()).
			Return(false, infra.RepositoryError{Kind: infra.KindNotFound})

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})

	s.Run("notification enqueue failure does not fail the confirmation", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, sig).Return(event, nil)
		s.expectWithin()
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), bookingID, s.clk.Now()).
			Return(true, nil)
		s.mockTx.EXPECT().Notifications().Return(s.mockJobs)
		s.mockJobs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), "email", "payment_confirmation", gomock.Any(), s.clk.Now()).
			Return(infra.RepositoryError{Kind: infra.KindDBFailure})

		s.NoError(s.cmd.HandleConfirmation(context.Background(), payload, sig))
	})
}
