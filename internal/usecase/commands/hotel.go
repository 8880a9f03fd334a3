package commands

import (
	"context"

	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterHotelParams struct {
	Name    string
	Address string
	City    string
	Contact string
}

type HotelCommands interface {
	// Register creates the caller's hotel (one per owner) and promotes the
	// caller to the hotelOwner role in the same transaction.
	Register(ctx context.Context, ownerID string, params RegisterHotelParams) (uuid.UUID, error)
}

type hotelCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewHotelCommands(uow shared.UnitOfWork, clk clock.Clock) HotelCommands {
	return &hotelCommandsImpl{uow: uow, clock: clk}
}

func (c *hotelCommandsImpl) Register(ctx context.Context, ownerID string, params RegisterHotelParams) (uuid.UUID, error) {
	entity, err := hotel.NewHotel(ownerID, params.Name, params.Address, params.City, params.Contact, c.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	var hotelID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().HotelByOwner(ctx, ownerID); err == nil {
			return errs.ErrHotelAlreadyExists
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		id, err := tx.Hotels().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrHotelAlreadyExists
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		hotelID = id

		if err := tx.Users().SetRole(ctx, tx.DB(), ownerID, user.RoleHotelOwner.String(), c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return hotelID, nil
}
