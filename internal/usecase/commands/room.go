package commands

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoomParams struct {
	RoomType           string
	PricePerNightCents int64
	Amenities          []string
	Images             []string
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, ownerID string, params CreateRoomParams) (uuid.UUID, error)
	// ToggleListing soft-hides or relists a room; rooms are never deleted.
	ToggleListing(ctx context.Context, ownerID string, roomID uuid.UUID) error
	ChangePrice(ctx context.Context, ownerID string, roomID uuid.UUID, pricePerNightCents int64) error
	UpdateAmenities(ctx context.Context, ownerID string, roomID uuid.UUID, amenities []string) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	cache queries.RoomListCache
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, cache queries.RoomListCache, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, ownerID string, params CreateRoomParams) (uuid.UUID, error) {
	var roomID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		hotelSnap, err := tx.Reads().HotelByOwner(ctx, ownerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrHotelNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		entity, err := room.NewRoom(
			hotelSnap.ID,
			params.RoomType,
			params.PricePerNightCents,
			params.Amenities,
			params.Images,
			c.clock.Now(),
		)
		if err != nil {
			return err
		}

		id, err := tx.Rooms().Create(ctx, tx.DB(), entity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		roomID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.invalidateListing(ctx)
	return roomID, nil
}

func (c *roomCommandsImpl) ToggleListing(ctx context.Context, ownerID string, roomID uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.ownedRoom(ctx, tx, ownerID, roomID)
		if err != nil {
			return err
		}
		return wrapDB(tx.Rooms().SetListed(ctx, tx.DB(), roomID, !snap.Listed, c.clock.Now()))
	})
	if err != nil {
		return err
	}

	c.invalidateListing(ctx)
	return nil
}

func (c *roomCommandsImpl) ChangePrice(ctx context.Context, ownerID string, roomID uuid.UUID, pricePerNightCents int64) error {
	if pricePerNightCents <= 0 {
		return room.ErrInvalidPrice
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.ownedRoom(ctx, tx, ownerID, roomID); err != nil {
			return err
		}
		return wrapDB(tx.Rooms().UpdatePrice(ctx, tx.DB(), roomID, pricePerNightCents, c.clock.Now()))
	})
	if err != nil {
		return err
	}

	c.invalidateListing(ctx)
	return nil
}

func (c *roomCommandsImpl) UpdateAmenities(ctx context.Context, ownerID string, roomID uuid.UUID, amenities []string) error {
	for _, a := range amenities {
		if a == "" {
			return room.ErrEmptyAmenity
		}
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.ownedRoom(ctx, tx, ownerID, roomID); err != nil {
			return err
		}
		return wrapDB(tx.Rooms().UpdateAmenities(ctx, tx.DB(), roomID, amenities, c.clock.Now()))
	})
	if err != nil {
		return err
	}

	c.invalidateListing(ctx)
	return nil
}

// ownedRoom loads the room and checks it belongs to the caller's hotel.
func (c *roomCommandsImpl) ownedRoom(ctx context.Context, tx shared.Tx, ownerID string, roomID uuid.UUID) (*shared.RoomSnapshot, error) {
	hotelSnap, err := tx.Reads().HotelByOwner(ctx, ownerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrHotelNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	roomSnap, err := tx.Reads().RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if roomSnap.HotelID != hotelSnap.ID {
		return nil, errs.ErrUnauthorized
	}
	return roomSnap, nil
}

func (c *roomCommandsImpl) invalidateListing(ctx context.Context) {
	if err := c.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate room list cache", "error", err)
	}
}

func wrapDB(err error) error {
	if err == nil {
		return nil
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
