package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/queries"
)

const roomListKey = "rooms:listed"

// RoomListCache caches the public room listing in Redis. Every failure
// path logs and degrades to the database; the cache is never load-bearing.
type RoomListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomListCache(client *redis.Client, cfg config.RedisConfig) *RoomListCache {
	return &RoomListCache{client: client, ttl: cfg.RoomListTTL}
}

func (c *RoomListCache) Get(ctx context.Context) ([]*queries.RoomView, bool) {
	raw, err := c.client.Get(ctx, roomListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("room list cache read failed", "error", err)
		}
		return nil, false
	}

	var rooms []*queries.RoomView
	if err := json.Unmarshal(raw, &rooms); err != nil {
		slog.Warn("room list cache entry corrupt, dropping", "error", err)
		_ = c.client.Del(ctx, roomListKey).Err()
		return nil, false
	}
	return rooms, true
}

func (c *RoomListCache) Set(ctx context.Context, rooms []*queries.RoomView) {
	raw, err := json.Marshal(rooms)
	if err != nil {
		slog.Warn("room list cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, roomListKey, raw, c.ttl).Err(); err != nil {
		slog.Warn("room list cache write failed", "error", err)
	}
}

func (c *RoomListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, roomListKey).Err()
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	return client, cleanup, nil
}
