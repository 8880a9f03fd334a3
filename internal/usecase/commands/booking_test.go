//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"
	sharedmock "stayhub/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockUoW     *sharedmock.MockUnitOfWork
	mockTx      *sharedmock.MockTx
	mockReads   *sharedmock.MockCommandReads
	mockBooking *sharedmock.MockBookingRepository
	mockJobs    *sharedmock.MockNotificationRepository
	clk         *clock.MockClock
	cmd         commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBooking = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockJobs = sharedmock.NewMockNotificationRepository(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
	s.cmd = commands.NewBookingCommands(s.mockUoW, s.clk, config.BookingConfig{Currency: "usd"})
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) expectWithin() {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
	s.mockTx.EXPECT().Reads().Return(s.mockReads).AnyTimes()
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
}

// ================================================================================
// CheckAvailability
// ================================================================================

func (s *BookingCommandsTestSuite) TestCheckAvailability() {
	b := builder.NewBookingBuilder()
	roomSnap := b.BuildRoomSnapshot()
	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	s.Run("available when listed and no overlap", func() {
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), roomSnap.ID).Return(roomSnap, nil)
		s.mockReads.EXPECT().HasOverlappingBooking(gomock.Any(), roomSnap.ID, checkIn, checkOut).
			Return(false, nil)

		available, err := s.cmd.CheckAvailability(context.Background(), roomSnap.ID, checkIn, checkOut)

		s.NoError(err)
		s.True(available)
	})

	s.Run("unavailable when an active booking overlaps", func() {
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), roomSnap.ID).Return(roomSnap, nil)
		s.mockReads.EXPECT().HasOverlappingBooking(gomock.Any(), roomSnap.ID, checkIn, checkOut).
			Return(true, nil)

		available, err := s.cmd.CheckAvailability(context.Background(), roomSnap.ID, checkIn, checkOut)

		s.NoError(err)
		s.False(available)
	})

	s.Run("unlisted room reports unavailable without an overlap query", func() {
		unlisted := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listed = false
		}).BuildRoomSnapshot()
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), unlisted.ID).Return(unlisted, nil)

		available, err := s.cmd.CheckAvailability(context.Background(), unlisted.ID, checkIn, checkOut)

		s.NoError(err)
		s.False(available)
	})

	s.Run("unknown room is an error, not an availability answer", func() {
		missing := uuid.New()
		s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
		s.mockReads.EXPECT().RoomByID(gomock.Any(), missing).
			Return(nil, infra.RepositoryError{Kind: infra.KindNotFound})

		_, err := s.cmd.CheckAvailability(context.Background(), missing, checkIn, checkOut)

		s.ErrorIs(err, errs.ErrRoomNotFound)
	})

	s.Run("inverted range rejected before any read", func() {
		_, err := s.cmd.CheckAvailability(context.Background(), roomSnap.ID, checkOut, checkIn)
		s.ErrorIs(err, errs.ErrInvalidRange)
	})
}

// ================================================================================
// CreateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	b := builder.NewBookingBuilder()
	roomSnap := b.BuildRoomSnapshot()
	params := commands.CreateBookingParams{
		RoomID:   roomSnap.ID,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Guests:   2,
	}

	s.Run("creates booking and enqueues outbox job in one transaction", func() {
		newID := uuid.New()
		s.expectWithin()
		s.mockReads.EXPECT().RoomByID(gomock.Any(), roomSnap.ID).Return(roomSnap, nil)
		s.mockReads.EXPECT().HasOverlappingBooking(gomock.Any(), roomSnap.ID, b.CheckIn, b.CheckOut).
			Return(false, nil)
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, entity *booking.Booking) (uuid.UUID, error) {
				s.Equal("user_2abc", entity.UserID())
				s.Equal(roomSnap.ID, entity.RoomID())
				s.Equal(int64(30000), entity.Total().Cents())
				s.Equal("usd", entity.Currency())
				s.Equal(booking.StatusPending, entity.Status())
				return newID, nil
			})
		s.mockTx.EXPECT().Notifications().Return(s.mockJobs)
		s.mockJobs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), "email", "booking_confirmation", gomock.Any(), s.clk.Now()).
			Return(nil)

		id, err := s.cmd.CreateBooking(context.Background(), "user_2abc", params)

		s.NoError(err)
		s.Equal(newID, id)
	})

	s.Run("pre-check overlap rejects without an insert", func() {
		s.expectWithin()
		s.mockReads.EXPECT().RoomByID(gomock.Any(), roomSnap.ID).Return(roomSnap, nil)
		s.mockReads.EXPECT().HasOverlappingBooking(gomock.Any(), roomSnap.ID, b.CheckIn, b.CheckOut).
			Return(true, nil)

		_, err := s.cmd.CreateBooking(context.Background(), "user_2abc", params)

		s.ErrorIs(err, errs.ErrRoomUnavailable)
	})

	s.Run("constraint conflict on insert surfaces as unavailable", func() {
		s.expectWithin()
		s.mockReads.EXPECT().RoomByID(gomock.Any(), roomSnap.ID).Return(roomSnap, nil)
		s.mockReads.EXPECT().HasOverlappingBooking(gomock.Any(), roomSnap.ID, b.CheckIn, b.CheckOut).
			Return(false, nil)
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.RepositoryError{Kind: infra.KindConflict})

		_, err := s.cmd.CreateBooking(context.Background(), "user_2abc", params)

		s.ErrorIs(err, errs.ErrRoomUnavailable)
	})

	s.Run("unlisted room cannot be booked", func() {
		unlisted := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listed = false
		}).BuildRoomSnapshot()
		s.expectWithin()
		s.mockReads.EXPECT().RoomByID(gomock.Any(), unlisted.ID).Return(unlisted, nil)

		_, err := s.cmd.CreateBooking(context.Background(), "user_2abc", commands.CreateBookingParams{
			RoomID:   unlisted.ID,
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Guests:   2,
		})

		s.ErrorIs(err, errs.ErrRoomNotListed)
	})

	s.Run("invalid range rejected before the transaction", func() {
		_, err := s.cmd.CreateBooking(context.Background(), "user_2abc", commands.CreateBookingParams{
			RoomID:   roomSnap.ID,
			CheckIn:  b.CheckOut,
			CheckOut: b.CheckIn,
			Guests:   2,
		})
		s.ErrorIs(err, errs.ErrInvalidRange)
	})

	s.Run("non-positive guest count rejected before the transaction", func() {
		_, err := s.cmd.CreateBooking(context.Background(), "user_2abc", commands.CreateBookingParams{
			RoomID:   roomSnap.ID,
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Guests:   0,
		})
		s.ErrorIs(err, errs.ErrInvalidGuestCount)
	})
}

// ================================================================================
// CancelBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	snap := builder.NewBookingBuilder().BuildSnapshot()

	s.Run("owner cancels a pending booking", func() {
		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().Cancel(gomock.Any(), gomock.Any(), snap.ID, s.clk.Now()).Return(true, nil)

		s.NoError(s.cmd.CancelBooking(context.Background(), snap.UserID, snap.ID))
	})

	s.Run("non-owner cannot cancel", func() {
		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := s.cmd.CancelBooking(context.Background(), "user_intruder", snap.ID)

		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("already settled booking cannot be cancelled", func() {
		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		s.mockTx.EXPECT().Bookings().Return(s.mockBooking)
		s.mockBooking.EXPECT().Cancel(gomock.Any(), gomock.Any(), snap.ID, s.clk.Now()).Return(false, nil)

		err := s.cmd.CancelBooking(context.Background(), snap.UserID, snap.ID)

		s.ErrorIs(err, errs.ErrBookingNotPending)
	})
}
