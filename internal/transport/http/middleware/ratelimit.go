package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sharespace/internal/transport/http/response"
)

// RateLimit allows limit requests per window for each client ip on the named
// resource, counted in a fixed redis window. A nil client or a redis failure
// lets the request through.
func RateLimit(rdb *redisv9.Client, resource string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s:ip:%s", resource, c.ClientIP())

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("rate limit check failed, allowing request",
				zap.String("resource", resource),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Warn("rate limit expire failed", zap.String("key", key), zap.Error(err))
			}
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Abort(c, http.StatusTooManyRequests, response.MsgTooManyRequest)
			return
		}
		c.Next()
	}
}
