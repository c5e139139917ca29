package config

import "time"

// CacheConfig defines settings for the query cache layer.  Each entry
// class carries its own TTL so that cheap-to-recompute views (room
// list) and window-specific availability results can expire on
// different schedules.  When Enabled is false or no Redis client is
// configured, caching is disabled and every read goes straight to the
// database.
type CacheConfig struct {
    Enabled         bool
    TTL             time.Duration // default TTL for entries without a class-specific one
    RoomTTL         time.Duration // room list and room detail entries
    AvailabilityTTL time.Duration // per-window availability entries
    Prefix          string        // key namespace
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:         getenv("CACHE_ENABLED", "true") == "true",
        TTL:             parseDur(getenv("CACHE_TTL", "30s")),
        RoomTTL:         parseDur(getenv("CACHE_ROOM_TTL", "60s")),
        AvailabilityTTL: parseDur(getenv("CACHE_AVAILABILITY_TTL", "15s")),
        Prefix:          getenv("CACHE_PREFIX", "cache"),
    }
}
