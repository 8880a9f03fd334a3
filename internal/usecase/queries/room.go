package queries

import (
	"context"
	"log/slog"
)

type RoomQueries interface {
	// ListPublic returns listed rooms newest-first, served cache-aside.
	ListPublic(ctx context.Context) ([]*RoomView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*RoomView, error)
}

type RoomViewRepo interface {
	FindListed(ctx context.Context) ([]*RoomView, error)
	FindByHotelOwner(ctx context.Context, ownerID string) ([]*RoomView, error)
}

// RoomListCache is the cache-aside port for the public listing. Cache
// failures degrade to the database, never to an error.
type RoomListCache interface {
	Get(ctx context.Context) ([]*RoomView, bool)
	Set(ctx context.Context, rooms []*RoomView)
	Invalidate(ctx context.Context) error
}

type roomQueriesImpl struct {
	repo  RoomViewRepo
	cache RoomListCache
}

func NewRoomQueries(repo RoomViewRepo, cache RoomListCache) RoomQueries {
	return &roomQueriesImpl{repo: repo, cache: cache}
}

func (q *roomQueriesImpl) ListPublic(ctx context.Context) ([]*RoomView, error) {
	if rooms, ok := q.cache.Get(ctx); ok {
		return rooms, nil
	}

	rooms, err := q.repo.FindListed(ctx)
	if err != nil {
		return nil, err
	}

	q.cache.Set(ctx, rooms)
	return rooms, nil
}

func (q *roomQueriesImpl) ListByOwner(ctx context.Context, ownerID string) ([]*RoomView, error) {
	rooms, err := q.repo.FindByHotelOwner(ctx, ownerID)
	if err != nil {
		slog.Warn("failed to list owner rooms", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return rooms, nil
}
