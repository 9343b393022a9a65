package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

const snapshotTTL = time.Hour

// SnapshotCache stores authorization snapshots in Redis with a bounded TTL.
// Entries are populated lazily on read misses and deleted explicitly on any
// write to the mirrored user fields. Key format: snapshot:<user_id>
type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *SnapshotCache) Get(ctx context.Context, userID string) (*domain.Snapshot, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		// Treat a corrupt entry as a miss; the read-through path rewrites it.
		return nil, nil
	}
	return &snap, nil
}

func (c *SnapshotCache) Set(ctx context.Context, snap *domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(snap.UserID), raw, snapshotTTL).Err()
}

func (c *SnapshotCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *SnapshotCache) key(userID string) string {
	return "snapshot:" + userID
}
