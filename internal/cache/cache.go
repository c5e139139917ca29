// Package cache provides the short-TTL read-through cache that fronts
// room, seat and availability queries.  Entries are advisory: a miss or
// an unreachable Redis always falls back to the authoritative store.
// Invalidation is coarse and per room, driven synchronously by the
// lifecycle manager's write path.
package cache

import (
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/studyhub/seat-reservation/internal/config"
)

// Cache wraps a Redis client.  A Cache built over a nil client is
// inert: every Get misses, every Set and invalidation is a no-op.
type Cache struct {
    rdb *redis.Client
    cfg config.CacheConfig
    log *zap.Logger
}

// New constructs a Cache.  rdb may be nil when Redis is unavailable.
func New(rdb *redis.Client, cfg config.CacheConfig, log *zap.Logger) *Cache {
    if log == nil {
        log = zap.NewNop()
    }
    return &Cache{rdb: rdb, cfg: cfg, log: log}
}

// Enabled reports whether the cache can serve entries at all.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil && c.cfg.Enabled }

// RoomListKey keys the full room list.
func (c *Cache) RoomListKey() string {
    return c.cfg.Prefix + ":rooms"
}

// RoomDetailKey keys a single room's detail view (room + seats).
func (c *Cache) RoomDetailKey(roomID uint64) string {
    return fmt.Sprintf("%s:room:%d:detail", c.cfg.Prefix, roomID)
}

// AvailabilityKey keys one availability query.  The window is hashed so
// arbitrary instants produce bounded key lengths; the room ID stays in
// clear text so per-room invalidation can match on prefix.
func (c *Cache) AvailabilityKey(roomID uint64, start, end time.Time) string {
    sum := sha1.Sum([]byte(start.UTC().Format(time.RFC3339Nano) + "|" + end.UTC().Format(time.RFC3339Nano)))
    return fmt.Sprintf("%s:room:%d:avail:%x", c.cfg.Prefix, roomID, sum[:])
}

// GetJSON loads and unmarshals the entry under key into dest.  The
// boolean reports a hit.  Errors are logged and surface as misses.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
    if !c.Enabled() {
        return false
    }
    data, err := c.rdb.Get(ctx, key).Bytes()
    if err != nil {
        if err != redis.Nil {
            c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
        }
        return false
    }
    if err := json.Unmarshal(data, dest); err != nil {
        c.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
        return false
    }
    return true
}

// SetJSON stores v under key with the given TTL.  Failures are logged
// and otherwise ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
    if !c.Enabled() {
        return
    }
    if ttl <= 0 {
        ttl = c.cfg.TTL
    }
    data, err := json.Marshal(v)
    if err != nil {
        c.log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
        return
    }
    if err := c.rdb.SetEx(ctx, key, data, ttl).Err(); err != nil {
        c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
    }
}

// InvalidateRoom drops the room list, the room's detail entry and every
// cached availability window for the room.  Clearing all windows is
// deliberate; per-window precision is not required.
func (c *Cache) InvalidateRoom(ctx context.Context, roomID uint64) {
    if !c.Enabled() {
        return
    }
    keys := []string{c.RoomListKey(), c.RoomDetailKey(roomID)}
    pattern := fmt.Sprintf("%s:room:%d:avail:*", c.cfg.Prefix, roomID)
    iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        c.log.Warn("cache scan failed", zap.Uint64("room_id", roomID), zap.Error(err))
    }
    if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
        c.log.Warn("cache invalidation failed", zap.Uint64("room_id", roomID), zap.Error(err))
    }
}

// RoomTTL is the lifetime of room list and room detail entries.
func (c *Cache) RoomTTL() time.Duration { return c.ttlOr(c.cfg.RoomTTL) }

// AvailabilityTTL is the lifetime of per-window availability entries.
func (c *Cache) AvailabilityTTL() time.Duration { return c.ttlOr(c.cfg.AvailabilityTTL) }

func (c *Cache) ttlOr(d time.Duration) time.Duration {
    if d > 0 {
        return d
    }
    return c.cfg.TTL
}
