package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
)

type BookingQueries interface {
	// ListByUser returns the caller's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]*BookingView, error)
	// DashboardByOwner returns the owner's hotel bookings plus fold-computed
	// aggregates.
	DashboardByOwner(ctx context.Context, ownerID string) (*HotelDashboard, error)
}

type BookingViewRepo interface {
	FindByUserID(ctx context.Context, userID string) ([]*BookingView, error)
	FindByHotelOwner(ctx context.Context, ownerID string) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID string) ([]*BookingView, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *bookingQueriesImpl) DashboardByOwner(ctx context.Context, ownerID string) (*HotelDashboard, error) {
	views, err := q.repo.FindByHotelOwner(ctx, ownerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrHotelNotFound
		}
		return nil, err
	}

	dashboard := &HotelDashboard{Bookings: views}
	for _, v := range views {
		dashboard.TotalBookings++
		dashboard.TotalRevenueCents += v.TotalCents
	}
	return dashboard, nil
}
