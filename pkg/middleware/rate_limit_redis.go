package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/metrics"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

// RedisRateLimitMiddleware allows max requests per fixed window per key.
// INCR on a per-window key; the first hit sets the expiry.
func RedisRateLimitMiddleware(client *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	if client == nil {
		return RateLimitMiddleware(float64(max)/float64(windowSeconds), max)
	}
	return func(c *gin.Context) {
		bucket := time.Now().Unix() / int64(windowSeconds)
		redisKey := fmt.Sprintf("rl:%s:%d", limitKey(c), bucket)

		ctx := c.Request.Context()
		cnt, err := client.Incr(ctx, redisKey).Result()
		if err != nil {
			logger.Errorf("rate limit check failed: %v", err)
			response.AbortError(c, http.StatusInternalServerError, "Rate limit check failed", "")
			return
		}
		if cnt == 1 {
			_ = client.Expire(ctx, redisKey, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if int(cnt) > max {
			rejectRateLimited(c, "redis", strconv.Itoa(windowSeconds))
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
