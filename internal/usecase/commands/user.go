package commands

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"
)

type UserCommands interface {
	// SyncFromIdentity applies a verified identity-provider event to the
	// mirrored users table. Unknown event types are ignored.
	SyncFromIdentity(ctx context.Context, event *IdentityEvent) error
	StoreRecentSearch(ctx context.Context, userID, city string) error
}

type userCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserCommands(uow shared.UnitOfWork, clk clock.Clock) UserCommands {
	return &userCommandsImpl{uow: uow, clock: clk}
}

func (c *userCommandsImpl) SyncFromIdentity(ctx context.Context, event *IdentityEvent) error {
	switch event.Type {
	case IdentityUserCreated, IdentityUserUpdated:
		entity, err := user.NewUser(event.UserID, event.Email, event.DisplayName, event.AvatarURL, c.clock.Now())
		if err != nil {
			return err
		}
		return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			record := shared.UserRecord{
				ID:          entity.ID(),
				Email:       entity.Email(),
				DisplayName: entity.DisplayName(),
				AvatarURL:   entity.AvatarURL(),
				Role:        entity.Role().String(),
				UpdatedAt:   c.clock.Now(),
			}
			if err := tx.Users().Upsert(ctx, tx.DB(), record); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return nil
		})

	case IdentityUserDeleted:
		return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Users().Delete(ctx, tx.DB(), event.UserID); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return nil
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return nil
		})

	default:
		slog.Debug("ignoring identity event", "type", event.Type)
		return nil
	}
}

func (c *userCommandsImpl) StoreRecentSearch(ctx context.Context, userID, city string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().UserByID(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrUserNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		entity := user.ReconstructUser(
			snap.ID, snap.Email, snap.DisplayName, snap.AvatarURL,
			user.Role(snap.Role), snap.RecentCities,
			c.clock.Now(), c.clock.Now(),
		)
		if err := entity.RecordSearchedCity(city, c.clock.Now()); err != nil {
			return err
		}

		if err := tx.Users().SetRecentCities(ctx, tx.DB(), userID, entity.RecentCities(), c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
