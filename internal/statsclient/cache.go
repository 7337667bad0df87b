package statsclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewsCache keeps recent unique-view counts per event.
type ViewsCache interface {
	Get(ctx context.Context, ids []uint) (map[uint]int64, error)
	Set(ctx context.Context, views map[uint]int64) error
	Invalidate(ctx context.Context, id uint) error
}

type redisViewsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisViewsCache(rdb *redis.Client, ttl time.Duration) ViewsCache {
	return &redisViewsCache{rdb: rdb, ttl: ttl}
}

func viewsKey(id uint) string {
	return fmt.Sprintf("ewm:views:%d", id)
}

// Get returns only the ids found in the cache.
func (c *redisViewsCache) Get(ctx context.Context, ids []uint) (map[uint]int64, error) {
	found := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = viewsKey(id)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			found[ids[i]] = n
		}
	}
	return found, nil
}

func (c *redisViewsCache) Set(ctx context.Context, views map[uint]int64) error {
	if len(views) == 0 {
		return nil
	}
	pipe := c.rdb.Pipeline()
	for id, n := range views {
		pipe.Set(ctx, viewsKey(id), n, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisViewsCache) Invalidate(ctx context.Context, id uint) error {
	return c.rdb.Del(ctx, viewsKey(id)).Err()
}
