//go:build unit

package queries_test

import (
	"context"
	"testing"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingViewRepo struct {
	byUser  []*queries.BookingView
	byOwner []*queries.BookingView
	err     error
}

func (s *stubBookingViewRepo) FindByUserID(context.Context, string) ([]*queries.BookingView, error) {
	return s.byUser, s.err
}

func (s *stubBookingViewRepo) FindByHotelOwner(context.Context, string) ([]*queries.BookingView, error) {
	return s.byOwner, s.err
}

func TestDashboardByOwner(t *testing.T) {
	t.Run("folds totals over the owner's bookings", func(t *testing.T) {
		views := []*queries.BookingView{
			builder.NewBookingBuilder().BuildView(),
			builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.PricePerNightCents = 5000
			}).BuildView(),
		}
		q := queries.NewBookingQueries(&stubBookingViewRepo{byOwner: views})

		dashboard, err := q.DashboardByOwner(context.Background(), "owner_1")

		require.NoError(t, err)
		assert.Equal(t, 2, dashboard.TotalBookings)
		// 3 nights at 10000 plus 3 nights at 5000
		assert.Equal(t, int64(45000), dashboard.TotalRevenueCents)
		assert.Equal(t, views, dashboard.Bookings)
	})

	t.Run("no bookings yields zero totals", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingViewRepo{})

		dashboard, err := q.DashboardByOwner(context.Background(), "owner_1")

		require.NoError(t, err)
		assert.Zero(t, dashboard.TotalBookings)
		assert.Zero(t, dashboard.TotalRevenueCents)
	})

	t.Run("owner without a hotel maps to hotel not found", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingViewRepo{
			err: infra.RepositoryError{Kind: infra.KindNotFound},
		})

		_, err := q.DashboardByOwner(context.Background(), "owner_1")

		assert.ErrorIs(t, err, errs.ErrHotelNotFound)
	})
}
