package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/database"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/utils"
)

const rateLimitPrefix = "ratelimit:"

// RateLimit is a fixed-window limiter keyed by client IP and route, backed
// by redis. Without a redis connection it degrades to a no-op, which keeps
// local development and tests working.
func RateLimit(max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.RedisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s%s:%s", rateLimitPrefix, c.ClientIP(), c.FullPath())

		pipe := database.RedisClient.TxPipeline()
		incr := pipe.Incr(database.Ctx, key)
		ttl := pipe.TTL(database.Ctx, key)
		if _, err := pipe.Exec(database.Ctx); err != nil {
			// A broken limiter must not take the API down with it.
			c.Next()
			return
		}

		// A negative TTL means the key carries no expiry: either the counter
		// is brand new, or a crash landed between a past INCR and its EXPIRE.
		// Arm (or re-arm) the window in both cases so no counter outlives it.
		if ttl.Val() < 0 {
			database.RedisClient.Expire(database.Ctx, key, window)
		}

		if incr.Val() > int64(max) {
			c.JSON(http.StatusTooManyRequests, utils.NewErrorResponse(http.StatusTooManyRequests, "Too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
