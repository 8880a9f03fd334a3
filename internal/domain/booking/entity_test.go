//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, in, out time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(in, out)
	require.NoError(t, err)
	return stay
}

func TestStayRange(t *testing.T) {
	t.Run("rejects empty or inverted ranges", func(t *testing.T) {
		_, err := booking.NewStayRange(day(2024, 1, 10), day(2024, 1, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidRange)

		_, err = booking.NewStayRange(day(2024, 1, 15), day(2024, 1, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("truncates timestamps to UTC midnight", func(t *testing.T) {
		stay := mustStay(t,
			time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC),
		)
		assert.Equal(t, day(2024, 1, 10), stay.CheckIn())
		assert.Equal(t, day(2024, 1, 12), stay.CheckOut())
		assert.Equal(t, 2, stay.Nights())
	})

	t.Run("half-open overlap semantics", func(t *testing.T) {
		existing := mustStay(t, day(2024, 1, 10), day(2024, 1, 15))

		cases := []struct {
			name     string
			in, out  time.Time
			overlaps bool
		}{
			{"identical range", day(2024, 1, 10), day(2024, 1, 15), true},
			{"contained range", day(2024, 1, 11), day(2024, 1, 13), true},
			{"overlaps tail", day(2024, 1, 14), day(2024, 1, 16), true},
			{"overlaps head", day(2024, 1, 8), day(2024, 1, 11), true},
			{"spans whole range", day(2024, 1, 8), day(2024, 1, 20), true},
			{"back-to-back after checkout", day(2024, 1, 15), day(2024, 1, 18), false},
			{"back-to-back before checkin", day(2024, 1, 8), day(2024, 1, 10), false},
			{"disjoint later", day(2024, 2, 1), day(2024, 2, 5), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				candidate := mustStay(t, tc.in, tc.out)
				assert.Equal(t, tc.overlaps, existing.Overlaps(candidate))
				// overlap is symmetric
				assert.Equal(t, tc.overlaps, candidate.Overlaps(existing))
			})
		}
	})
}

func TestNewBooking(t *testing.T) {
	t.Run("total is price per night times nights, independent of guests", func(t *testing.T) {
		for _, guests := range []int{1, 2, 5} {
			b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.CheckIn = day(2024, 3, 1)
				b.CheckOut = day(2024, 3, 4)
				b.PricePerNightCents = 10000
				b.Guests = guests
			}).BuildDomain()

			require.NoError(t, err)
			assert.Equal(t, int64(30000), b.Total().Cents())
		}
	})

	t.Run("starts pending and unpaid", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.False(t, b.IsPaid())
		assert.Nil(t, b.PaidAt())
		assert.Equal(t, "usd", b.Currency())
	})

	t.Run("rejects unlisted room", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listed = false
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrRoomNotListed)
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Currency = ""
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrMissingCurrency)
	})

	t.Run("rejects non-positive guest count", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Guests = 0
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrInvalidGuestCount)
	})
}

func TestBookingStatusTransitions(t *testing.T) {
	now := day(2024, 3, 10)

	t.Run("confirm payment from pending", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.ConfirmPayment(now))

		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.IsPaid())
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, now, *b.PaidAt())
	})

	t.Run("second confirmation is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.ConfirmPayment(now))

		err = b.ConfirmPayment(now.Add(time.Hour))

		assert.ErrorIs(t, err, booking.ErrAlreadyPaid)
		assert.Equal(t, now, *b.PaidAt())
	})

	t.Run("cancel from pending frees the room", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Cancel(now))

		assert.Equal(t, booking.StatusCanceled, b.Status())
		assert.False(t, b.IsActive())
	})

	t.Run("cannot cancel a confirmed booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.ConfirmPayment(now))

		assert.ErrorIs(t, b.Cancel(now), booking.ErrNotPending)
	})

	t.Run("cannot confirm a cancelled booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Cancel(now))

		assert.ErrorIs(t, b.ConfirmPayment(now), booking.ErrNotPending)
	})
}
