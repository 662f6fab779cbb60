package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores JSON-serialisable values under string keys.
type Cache interface {
	// Get decodes the value stored at key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Keys used by the catalog read API.
const (
	KeyArtists        = "catalog:artists"
	KeyForYou         = "catalog:playlists:for-you"
	keyTrackFmt       = "catalog:track:%d"
	keyPlaylistTracks = "catalog:playlist:%d:tracks"
)

// TrackKey 根据歌曲ID生成缓存键
func TrackKey(id int64) string {
	return fmt.Sprintf(keyTrackFmt, id)
}

// PlaylistTracksKey 根据歌单ID生成缓存键
func PlaylistTracksKey(id int64) string {
	return fmt.Sprintf(keyPlaylistTracks, id)
}

// RedisCache is a Cache backed by Redis string values holding JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an already connected client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache never stores anything. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
