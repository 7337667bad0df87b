package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// RateLimiter limits requests per client IP. The counters live in Redis when
// a client is given, so several instances share one budget.
func RateLimiter(perMinute int64, rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  perMinute,
	}

	var store limiter.Store = memory.NewStore()
	if rdb != nil {
		redisStore, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "ewm_limiter"})
		if err != nil {
			log.Warn("redis rate limit store unavailable, using memory", zap.Error(err))
		} else {
			store = redisStore
		}
	}

	// 📊 Limiter instance
	instance := limiter.New(store, rate)

	// 🚦 Gin-compatible middleware
	return ginlimiter.NewMiddleware(instance)
}
